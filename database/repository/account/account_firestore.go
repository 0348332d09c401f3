package accountRepo

import (
	"context"
	"fmt"
	"time"

	"passauth/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// AccountsCollection is the Firestore collection holding account documents,
// keyed by normalized email.
const AccountsCollection = "simple_users"

// FirestoreAccountRepo implements AccountRepository using Firestore.
type FirestoreAccountRepo struct {
	client *firestore.Client
}

// NewFirestoreAccountRepo creates a new instance of AccountRepository using Firestore.
func NewFirestoreAccountRepo(client *firestore.Client) AccountRepository {
	return &FirestoreAccountRepo{client: client}
}

// newContext creates a context with the given timeout.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// Create inserts a new account document. The email existence check, the
// device uniqueness query and the insert run in one Firestore transaction,
// so concurrent registrations for the same email or device cannot both
// succeed.
func (r *FirestoreAccountRepo) Create(ctx context.Context, acc *models.Account) error {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		ref := r.client.Collection(AccountsCollection).Doc(acc.Email)

		_, err := tx.Get(ref)
		if err == nil {
			return ErrDuplicateEmail
		}
		if status.Code(err) != codes.NotFound {
			return fmt.Errorf("failed to check for existing account: %w", err)
		}

		deviceQuery := r.client.Collection(AccountsCollection).
			Where("deviceFingerprint", "==", acc.DeviceFingerprint).
			Limit(1)
		docs, err := tx.Documents(deviceQuery).GetAll()
		if err != nil {
			return fmt.Errorf("failed to check device fingerprint: %w", err)
		}
		if len(docs) > 0 {
			return ErrDuplicateDevice
		}

		return tx.Create(ref, acc)
	})
}

// GetByEmail retrieves an account document by email.
func (r *FirestoreAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	snap, err := r.client.Collection(AccountsCollection).Doc(email).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch account with email %s: %w", email, err)
	}

	var acc models.Account
	if err := snap.DataTo(&acc); err != nil {
		return nil, fmt.Errorf("failed to decode account: %w", err)
	}
	return &acc, nil
}

// GetByDeviceFingerprint retrieves the account bound to a device fingerprint.
func (r *FirestoreAccountRepo) GetByDeviceFingerprint(ctx context.Context, fingerprint string) (*models.Account, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	docs, err := r.client.Collection(AccountsCollection).
		Where("deviceFingerprint", "==", fingerprint).
		Limit(1).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to query device fingerprint: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	var acc models.Account
	if err := docs[0].DataTo(&acc); err != nil {
		return nil, fmt.Errorf("failed to decode account: %w", err)
	}
	return &acc, nil
}

// UpdateLastLogin sets the lastLoginAt timestamp on the account document.
func (r *FirestoreAccountRepo) UpdateLastLogin(ctx context.Context, email string, at time.Time) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	_, err := r.client.Collection(AccountsCollection).Doc(email).Update(ctx, []firestore.Update{
		{Path: "lastLoginAt", Value: at},
	})
	if err != nil {
		return fmt.Errorf("failed to update last login for %s: %w", email, err)
	}
	return nil
}

// SetAccountStatus updates the lockout state fields on the account document.
func (r *FirestoreAccountRepo) SetAccountStatus(ctx context.Context, email string, active bool, until *time.Time, reason string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	updates := []firestore.Update{
		{Path: "isActive", Value: active},
	}
	if until != nil {
		updates = append(updates, firestore.Update{Path: "disabledUntil", Value: *until})
	} else {
		updates = append(updates, firestore.Update{Path: "disabledUntil", Value: firestore.Delete})
	}
	if reason != "" {
		updates = append(updates, firestore.Update{Path: "disabledReason", Value: reason})
	} else {
		updates = append(updates, firestore.Update{Path: "disabledReason", Value: firestore.Delete})
	}

	_, err := r.client.Collection(AccountsCollection).Doc(email).Update(ctx, updates)
	if err != nil {
		return fmt.Errorf("failed to update account status for %s: %w", email, err)
	}
	return nil
}

// File: passauth/models/device.go
package models

// DeviceInfo is the bundle of browser/platform attributes a client submits
// with every registration or validation call. The JSON field names are part
// of the wire contract: the device fingerprint is a digest over the
// canonical JSON serialization of these attributes.
type DeviceInfo struct {
	UserAgent           string  `json:"userAgent" bson:"userAgent" firestore:"userAgent"`
	Platform            string  `json:"platform" bson:"platform" firestore:"platform"`
	Language            string  `json:"language" bson:"language" firestore:"language"`
	Timezone            string  `json:"timezone" bson:"timezone" firestore:"timezone"`
	Screen              string  `json:"screen" bson:"screen" firestore:"screen"`
	ColorDepth          int     `json:"colorDepth" bson:"colorDepth" firestore:"colorDepth"`
	PixelRatio          float64 `json:"pixelRatio" bson:"pixelRatio" firestore:"pixelRatio"`
	HardwareConcurrency int     `json:"hardwareConcurrency" bson:"hardwareConcurrency" firestore:"hardwareConcurrency"`
	MaxTouchPoints      int     `json:"maxTouchPoints" bson:"maxTouchPoints" firestore:"maxTouchPoints"`

	// ClientIP is filled in server-side from the request and is excluded
	// from the fingerprint serialization.
	ClientIP string `json:"-" bson:"clientIp,omitempty" firestore:"clientIp,omitempty"`
}

package s3

import (
	"github.com/ThotaNithin79/Billing-Application/internal/types"
)

// Attachment is one uploaded stage document. Data is opaque to the rest of the
// system; only this package ever touches file bytes.
type Attachment struct {
	// FileName is the caller-supplied name, kept as a suffix of the reference
	// for operator readability.
	FileName string
	// Stage is the workflow stage category the attachment belongs to; it maps
	// to a key prefix in the bucket.
	Stage types.AttachmentStage
	Data  []byte
}

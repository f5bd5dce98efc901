package imaging

import (
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

// MaxFileSize is the largest image or resume accepted, 5MB.
const MaxFileSize int64 = 5 * 1024 * 1024

var resumeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// DetectType sniffs the content type from data, falling back to the declared type when
// data is empty.
func DetectType(declared string, data []byte) string {
	if len(data) == 0 {
		return declared
	}
	return mimetype.Detect(data).String()
}

// ValidateImage rejects anything that is not an image before checking the size.
func ValidateImage(declared string, size int64, data []byte) error {
	if !strings.HasPrefix(DetectType(declared, data), "image/") {
		return errs.NewFileValidationError(errs.ErrNotAnImage, "image", http.StatusBadRequest)
	}
	if size > MaxFileSize {
		return errs.NewFileValidationError(errs.ErrImageTooLarge, "image", http.StatusRequestEntityTooLarge)
	}
	return nil
}

// ValidateResume accepts PDF and Word documents up to MaxFileSize.
func ValidateResume(declared string, size int64, data []byte) error {
	if !isResumeType(declared, data) {
		return errs.NewFileValidationError(errs.ErrNotADocument, "resume", http.StatusBadRequest)
	}
	if size > MaxFileSize {
		return errs.NewFileValidationError(errs.ErrResumeTooLarge, "resume", http.StatusRequestEntityTooLarge)
	}
	return nil
}

func isResumeType(declared string, data []byte) bool {
	if len(data) == 0 {
		return resumeTypes[declared]
	}
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if resumeTypes[m.String()] {
			return true
		}
		// legacy .doc files only sniff as a generic OLE container
		if m.Is("application/x-ole-storage") && declared == "application/msword" {
			return true
		}
	}
	return false
}

package documents

import "time"

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	DocumentID   string    `json:"documentId"`
	Title        string    `json:"title"`
	Status       string    `json:"status"`
	SizeBytes    int64     `json:"sizeBytes"`
	PageCount    *int      `json:"pageCount,omitempty"`
	ErrorMessage *string   `json:"errorMessage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:   doc.ID,
		Title:        doc.Title,
		Status:       string(doc.Status),
		SizeBytes:    doc.SizeBytes,
		PageCount:    doc.PageCount,
		ErrorMessage: doc.ErrorMessage,
		CreatedAt:    doc.CreatedAt,
	}
}

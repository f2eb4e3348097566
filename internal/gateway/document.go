package gateway

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"edigivault/internal/utils"
	"edigivault/pkg/types"

	"github.com/sirupsen/logrus"
)

// ObjectPath builds the storage key for a document slot. The key is stable
// per slot so re-uploads overwrite the previous object instead of leaking
// orphans.
func ObjectPath(userID, serviceRequestID, docName, fileName string) string {
	slot := strings.ReplaceAll(docName, " ", "_")
	return fmt.Sprintf("%s/%s/%s%s", userID, serviceRequestID, slot, path.Ext(fileName))
}

// UploadDocument stores the file and records it against its checklist slot.
// The object write happens first: if storage rejects the file no row is
// touched, so the checklist never shows a file that does not exist.
func (g *Gateway) UploadDocument(ctx context.Context, userID, requestID string, group types.DocumentGroup, docName, fileName, contentType string, data []byte) (*types.Document, error) {
	if _, err := g.requests.ServiceRequestByID(ctx, userID, requestID); err != nil {
		return nil, err
	}

	objectPath := ObjectPath(userID, requestID, docName, fileName)
	fileURL, err := g.storage.Upload(ctx, objectPath, contentType, data)
	if err != nil {
		return nil, &types.NetworkError{Op: "upload document", Err: err}
	}

	existing, err := g.documents.DocumentByName(ctx, userID, requestID, docName)

	var notFound *types.NotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return nil, err
	}

	if existing != nil && err == nil {
		existing.FileRef = utils.StringPtr(fileURL)
		existing.NotAvailable = false
		existing.Status = types.DocStatusUploaded
		if err := g.documents.UpdateDocument(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	doc := &types.Document{
		UserID:           userID,
		ServiceRequestID: requestID,
		DocGroup:         group,
		DocName:          docName,
		FileRef:          utils.StringPtr(fileURL),
		Status:           types.DocStatusUploaded,
	}
	if err := g.documents.CreateDocument(ctx, doc); err != nil {
		return nil, err
	}

	g.logger.WithFields(logrus.Fields{
		"service_request_id": requestID,
		"doc_name":           docName,
	}).Info("document uploaded")

	return doc, nil
}

// SetNotAvailable flags or unflags a slot the user cannot produce a file
// for. Flagging discards any recorded file reference; unflagging a slot
// with no row creates a pending placeholder so its checklist state is
// explicit.
func (g *Gateway) SetNotAvailable(ctx context.Context, userID, requestID, docName string, group types.DocumentGroup, notAvailable bool) (*types.Document, error) {
	if _, err := g.requests.ServiceRequestByID(ctx, userID, requestID); err != nil {
		return nil, err
	}

	if group == "" {
		group = types.DocGroupCommon
	}

	existing, err := g.documents.DocumentByName(ctx, userID, requestID, docName)

	var notFound *types.NotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return nil, err
	}

	if existing != nil && err == nil {
		if notAvailable {
			existing.FileRef = nil
			existing.NotAvailable = true
			existing.Status = types.DocStatusNotAvailable
		} else {
			existing.NotAvailable = false
			if existing.FileRef != nil {
				existing.Status = types.DocStatusUploaded
			} else {
				existing.Status = types.DocStatusPending
			}
		}
		if err := g.documents.UpdateDocument(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	doc := &types.Document{
		UserID:           userID,
		ServiceRequestID: requestID,
		DocGroup:         group,
		DocName:          docName,
		NotAvailable:     notAvailable,
		Status:           types.DocStatusPending,
	}
	if notAvailable {
		doc.Status = types.DocStatusNotAvailable
	}
	if err := g.documents.CreateDocument(ctx, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// DeleteDocument removes a slot's row. The stored object is deleted best
// effort; a failed object delete never blocks clearing the slot.
func (g *Gateway) DeleteDocument(ctx context.Context, userID, documentID string) error {
	doc, err := g.documents.DocumentByID(ctx, userID, documentID)
	if err != nil {
		return err
	}

	if doc.FileRef != nil {
		objectPath := ObjectPath(doc.UserID, doc.ServiceRequestID, doc.DocName, utils.Deref(doc.FileRef))
		if err := g.storage.Delete(ctx, objectPath); err != nil {
			g.logger.WithError(err).WithField("document_id", documentID).Warn("failed to delete stored object")
		}
	}

	return g.documents.DeleteDocument(ctx, userID, documentID)
}

func (g *Gateway) Documents(ctx context.Context, userID, requestID string) ([]*types.Document, error) {
	return g.documents.DocumentsByServiceRequest(ctx, userID, requestID)
}

package internal

import (
	"bytes"
	"fmt"
	"mime/multipart"
)

// SendRequest is everything the composer collects for one /send_message
// call: the target room, the message kind tag, optional text, and an
// optional staged attachment.
type SendRequest struct {
	Room       string
	Kind       string
	Text       string
	Attachment *PendingAttachment
}

// canSubmit is the composer precondition: an active room and at least one
// of non-blank text or a staged attachment. Anything else is a no-op that
// sends no request.
func canSubmit(room, text string, stager *AttachmentStager) bool {
	if room == "" {
		return false
	}
	return text != "" || stager.HasPending()
}

// newSendRequest tags the request with the attachment kind when a file or
// recording is staged, else "text".
func newSendRequest(room, text string, stager *AttachmentStager) SendRequest {
	req := SendRequest{Room: room, Kind: KindText, Text: text}
	if pending := stager.Pending(); pending != nil {
		req.Kind = pending.Kind
		req.Attachment = pending
	}
	return req
}

// buildSendBody encodes the multipart form the backend expects: fields
// room and message_type always, message when text is present, file when an
// attachment is staged.
func buildSendBody(req SendRequest) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("room", req.Room); err != nil {
		return nil, "", err
	}
	if err := writer.WriteField("message_type", req.Kind); err != nil {
		return nil, "", err
	}
	if req.Text != "" {
		if err := writer.WriteField("message", req.Text); err != nil {
			return nil, "", err
		}
	}
	if req.Attachment != nil {
		part, err := writer.CreateFormFile("file", req.Attachment.DisplayName)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(req.Attachment.Data); err != nil {
			return nil, "", fmt.Errorf("encode attachment: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}

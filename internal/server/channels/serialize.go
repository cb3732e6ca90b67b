package channels

import (
	"encoding/json"
	"fmt"
)

// storedFile is the storage DTO for one attachment. The []byte field
// marshals as standard base64, matching the wire representation.
type storedFile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
	Data     []byte `json:"data_base64"`
}

type storedChannel struct {
	PasswordHash string       `json:"password_hash,omitempty"`
	Text         string       `json:"text"`
	Files        []storedFile `json:"files"`
}

// Serialize renders a channel plus its password hash into the storage form.
func Serialize(ch *Channel, passwordHash string) ([]byte, error) {
	sc := storedChannel{
		PasswordHash: passwordHash,
		Text:         ch.Text,
		Files:        make([]storedFile, 0, len(ch.Files)),
	}
	for _, f := range ch.Files {
		sc.Files = append(sc.Files, storedFile{
			ID:       f.ID,
			Name:     f.Name,
			MimeType: f.MimeType,
			Size:     f.Size,
			Data:     f.Content,
		})
	}

	data, err := json.Marshal(sc)
	if err != nil {
		return nil, fmt.Errorf("serialize channel: %w", err)
	}
	return data, nil
}

// Deserialize parses a stored value back into a channel and its password
// hash. Values written before the structured format existed are plain text;
// those come back as an open text-only channel.
func Deserialize(raw []byte) (*Channel, string) {
	var sc storedChannel
	if err := json.Unmarshal(raw, &sc); err != nil {
		return &Channel{Text: string(raw)}, ""
	}

	ch := &Channel{
		Text:  sc.Text,
		Files: make([]File, 0, len(sc.Files)),
	}
	for _, f := range sc.Files {
		ch.Files = append(ch.Files, File{
			ID:       f.ID,
			Name:     f.Name,
			MimeType: f.MimeType,
			Size:     f.Size,
			Content:  f.Data,
		})
	}
	return ch, sc.PasswordHash
}

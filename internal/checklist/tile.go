package checklist

import "fmt"

// TileState is the lifecycle state of a single document slot as the user
// interacts with it.
type TileState string

const (
	TileEmpty        TileState = "empty"
	TileUploading    TileState = "uploading"
	TileUploaded     TileState = "uploaded"
	TileNotAvailable TileState = "not_available"
)

// Tile tracks one document slot through its upload lifecycle. The zero
// value is an empty tile.
type Tile struct {
	Name  string
	State TileState
}

func NewTile(name string) *Tile {
	return &Tile{Name: name, State: TileEmpty}
}

// FromStatus positions the tile at the state implied by stored rows.
func (t *Tile) FromStatus(status DocStatus) {
	switch {
	case status.Uploaded:
		t.State = TileUploaded
	case status.NotAvailable:
		t.State = TileNotAvailable
	default:
		t.State = TileEmpty
	}
}

// BeginUpload moves an empty tile into the uploading state. An uploaded
// tile may also begin a replacement upload.
func (t *Tile) BeginUpload() error {
	switch t.State {
	case TileEmpty, TileUploaded:
		t.State = TileUploading
		return nil
	default:
		return fmt.Errorf("cannot upload %q while %s", t.Name, t.State)
	}
}

// FinishUpload resolves an in-flight upload. On failure the tile returns
// to empty so the user can retry.
func (t *Tile) FinishUpload(err error) error {
	if t.State != TileUploading {
		return fmt.Errorf("no upload in flight for %q", t.Name)
	}
	if err != nil {
		t.State = TileEmpty
		return err
	}
	t.State = TileUploaded
	return nil
}

// MarkNotAvailable declares the document cannot be produced. Only an empty
// slot can be marked; an uploaded file must be removed first.
func (t *Tile) MarkNotAvailable() error {
	if t.State != TileEmpty {
		return fmt.Errorf("cannot mark %q not available while %s", t.Name, t.State)
	}
	t.State = TileNotAvailable
	return nil
}

// ClearNotAvailable retracts a not-available declaration.
func (t *Tile) ClearNotAvailable() error {
	if t.State != TileNotAvailable {
		return fmt.Errorf("%q is not marked unavailable", t.Name)
	}
	t.State = TileEmpty
	return nil
}

// Remove deletes an uploaded file, returning the slot to empty.
func (t *Tile) Remove() error {
	if t.State != TileUploaded {
		return fmt.Errorf("nothing uploaded for %q", t.Name)
	}
	t.State = TileEmpty
	return nil
}

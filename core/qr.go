package core

// QRRenderer renders a check-in token into a scannable image and stores it.
// The image format and storage mechanism are implementation details; callers
// only keep the returned URL.
type QRRenderer interface {
	Render(token, filename string) (url string, err error)
}

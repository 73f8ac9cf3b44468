package domain

import "io"

// Upload is a file received with a request, readable only while the request lives
type Upload struct {
	Name    string
	Content io.Reader
}

package dto

import "io"

type UploadFileCommand struct {
	Filename string
	Content  io.Reader
}

type UploadFileOutput struct {
	URL string `json:"url"`
}

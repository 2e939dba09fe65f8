package model

import "io"

// File is a new image chosen for upload.
type File struct {
	Name    string
	Content io.Reader
}

// Image is either the URL of an image the API already serves or a new file
// to upload. It is only sent to the API when File is set.
type Image struct {
	URL  string
	File *File
}

func (i Image) IsUpload() bool { return i.File != nil }

// Draft is the user-editable part of an entity as submitted to the API.
type Draft[F any] struct {
	Fields F
	Image  Image
}

package handlers

import (
	"bytes"
	"context"
	"mime/multipart"

	"github.com/BruksfildServices01/clinic-scheduler/internal/storage"
)

// uploadImage shrinks and re-encodes an uploaded picture before storing it.
func uploadImage(
	ctx context.Context,
	store storage.ImageStore,
	fh *multipart.FileHeader,
	name string,
) (storage.Image, error) {

	f, err := fh.Open()
	if err != nil {
		return storage.Image{}, err
	}
	defer f.Close()

	data, err := storage.PrepareImage(f, storage.MaxImageSide)
	if err != nil {
		return storage.Image{}, err
	}

	return store.Upload(ctx, name, bytes.NewReader(data))
}

package testutil

import (
	"context"
	"io"
	"sync"

	"github.com/minio/minio-go/v7"
)

// FakeObjectClient is an in-memory object store with injectable failures
type FakeObjectClient struct {
	mu sync.Mutex

	Objects      map[string][]byte
	ContentTypes map[string]string

	// PutErr fails every PutObject call
	PutErr error
	// RemoveErr fails every RemoveObject call
	RemoveErr error
	// BatchErrs fails individual keys of a batch delete
	BatchErrs map[string]error
	// OmitFromBatch drops keys from the batch delete response
	OmitFromBatch map[string]bool

	PutCalls    int
	RemoveCalls int
	BatchCalls  int
	BatchKeys   [][]string
}

// NewFakeObjectClient creates an empty fake store
func NewFakeObjectClient() *FakeObjectClient {
	return &FakeObjectClient{
		Objects:       make(map[string][]byte),
		ContentTypes:  make(map[string]string),
		BatchErrs:     make(map[string]error),
		OmitFromBatch: make(map[string]bool),
	}
}

func (f *FakeObjectClient) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.PutCalls++
	if f.PutErr != nil {
		return minio.UploadInfo{}, f.PutErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.Objects[objectName] = data
	f.ContentTypes[objectName] = opts.ContentType
	return minio.UploadInfo{Bucket: bucketName, Key: objectName, Size: int64(len(data))}, nil
}

func (f *FakeObjectClient) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.RemoveCalls++
	if f.RemoveErr != nil {
		return f.RemoveErr
	}
	delete(f.Objects, objectName)
	return nil
}

func (f *FakeObjectClient) RemoveObjectsWithResult(ctx context.Context, bucketName string, objectsCh <-chan minio.ObjectInfo, opts minio.RemoveObjectsOptions) <-chan minio.RemoveObjectResult {
	f.mu.Lock()
	f.BatchCalls++
	var keys []string
	for obj := range objectsCh {
		keys = append(keys, obj.Key)
	}
	f.BatchKeys = append(f.BatchKeys, keys)

	results := make(chan minio.RemoveObjectResult, len(keys))
	for _, key := range keys {
		if f.OmitFromBatch[key] {
			continue
		}
		if err := f.BatchErrs[key]; err != nil {
			results <- minio.RemoveObjectResult{ObjectName: key, Err: err}
			continue
		}
		delete(f.Objects, key)
		results <- minio.RemoveObjectResult{ObjectName: key}
	}
	close(results)
	f.mu.Unlock()
	return results
}

// Has reports whether key is stored
func (f *FakeObjectClient) Has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.Objects[key]
	return ok
}

// Calls returns the total number of backend requests made
func (f *FakeObjectClient) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.PutCalls + f.RemoveCalls + f.BatchCalls
}

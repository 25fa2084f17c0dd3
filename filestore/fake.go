package filestore

import (
	"context"
	"io"
	"io/ioutil"
	"sync"
	"time"
)

// FakeAssetStore is an in-memory AssetStore for tests. Individual operations
// can be made to fail by setting the corresponding error field, which lets
// tests exercise the ordering invariants of the asset lifecycle.
type FakeAssetStore struct {
	mu      sync.Mutex
	objects map[string]fakeObject

	Endpoint string
	Bucket   string

	FailEnsure error
	FailPut    error
	FailExists error
	FailDelete error
	FailList   error
}

type fakeObject struct {
	data         []byte
	lastModified time.Time
}

func NewFakeAssetStore() *FakeAssetStore {
	return &FakeAssetStore{
		objects:  make(map[string]fakeObject),
		Endpoint: "https://assets.test",
		Bucket:   "news",
	}
}

func (f *FakeAssetStore) EnsureBucket(ctx context.Context) error {
	return f.FailEnsure
}

func (f *FakeAssetStore) Put(ctx context.Context, key string, body io.Reader) error {
	if f.FailPut != nil {
		return f.FailPut
	}
	data, err := ioutil.ReadAll(body)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = fakeObject{data: data, lastModified: time.Now()}
	return nil
}

func (f *FakeAssetStore) Exists(ctx context.Context, key string) (bool, error) {
	if f.FailExists != nil {
		return false, f.FailExists
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[key]
	return ok, nil
}

func (f *FakeAssetStore) Delete(ctx context.Context, key string) error {
	if f.FailDelete != nil {
		return f.FailDelete
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

func (f *FakeAssetStore) List(ctx context.Context) ([]Object, error) {
	if f.FailList != nil {
		return nil, f.FailList
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	objects := make([]Object, 0, len(f.objects))
	for key, obj := range f.objects {
		objects = append(objects, Object{
			Key:          key,
			Size:         int64(len(obj.data)),
			LastModified: obj.lastModified,
		})
	}
	return objects, nil
}

func (f *FakeAssetStore) PublicURL(key string) string {
	return f.Endpoint + "/" + f.Bucket + "/" + key
}

// ObjectCount returns how many objects the fake currently holds.
func (f *FakeAssetStore) ObjectCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

// ObjectBytes returns the stored content for key, nil if absent.
func (f *FakeAssetStore) ObjectBytes(key string) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	obj, ok := f.objects[key]
	if !ok {
		return nil
	}
	return append([]byte(nil), obj.data...)
}

// SetLastModified backdates an object, used by reconciliation tests.
func (f *FakeAssetStore) SetLastModified(key string, t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if obj, ok := f.objects[key]; ok {
		obj.lastModified = t
		f.objects[key] = obj
	}
}

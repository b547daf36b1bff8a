// Copyright (c) 2026 Raytha. All rights reserved.

package contentitem_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaythaHQ/raytha-sub000/internal/core/contentitem"
	"github.com/RaythaHQ/raytha-sub000/internal/core/contenttype"
	"github.com/RaythaHQ/raytha-sub000/internal/core/field"
	"github.com/RaythaHQ/raytha-sub000/internal/core/revision"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/apperr"
)

// # Fakes

// fakeRevisionRepository is an in-memory revision.Repository. Setting
// failCreate makes every append fail, simulating a broken revision insert.
type fakeRevisionRepository struct {
	records    []*revision.Revision
	failCreate error
}

func (f *fakeRevisionRepository) Create(_ context.Context, parentType revision.ParentType, parentID string, snapshot json.RawMessage, actorID string) (*revision.Revision, error) {
	if f.failCreate != nil {
		return nil, f.failCreate
	}
	record := &revision.Revision{
		ID:            fmt.Sprintf("rev-%d", len(f.records)+1),
		ParentType:    parentType,
		ParentID:      parentID,
		Snapshot:      append(json.RawMessage(nil), snapshot...),
		CreatorUserID: actorID,
	}
	f.records = append(f.records, record)
	return record, nil
}

func (f *fakeRevisionRepository) GetByID(_ context.Context, id string) (*revision.Revision, error) {
	for _, record := range f.records {
		if record.ID == id {
			return record, nil
		}
	}
	return nil, apperr.NotFound("Revision")
}

func (f *fakeRevisionRepository) ListByParent(_ context.Context, parentType revision.ParentType, parentID string, _, _ int) ([]*revision.Revision, int, error) {
	matched := make([]*revision.Revision, 0)
	for _, record := range f.records {
		if record.ParentType == parentType && record.ParentID == parentID {
			matched = append(matched, record)
		}
	}
	return matched, len(matched), nil
}

// fakeItemRepository is an in-memory contentitem.Repository. Lifecycle
// transactions are simulated by applying both sides in one call.
type fakeItemRepository struct {
	items     map[string]*contentitem.ContentItem
	trash     map[string]*contentitem.DeletedContentItem
	revisions *fakeRevisionRepository
}

func newFakeItemRepository(revisions *fakeRevisionRepository) *fakeItemRepository {
	return &fakeItemRepository{
		items:     make(map[string]*contentitem.ContentItem),
		trash:     make(map[string]*contentitem.DeletedContentItem),
		revisions: revisions,
	}
}

func cloneItem(item *contentitem.ContentItem) *contentitem.ContentItem {
	clone := *item
	clone.DraftContent = item.DraftContent.Clone()
	clone.PublishedContent = item.PublishedContent.Clone()
	return &clone
}

func (f *fakeItemRepository) Create(_ context.Context, item *contentitem.ContentItem) error {
	f.items[item.ID] = cloneItem(item)
	return nil
}

func (f *fakeItemRepository) Update(_ context.Context, item *contentitem.ContentItem) error {
	if _, ok := f.items[item.ID]; !ok {
		return apperr.NotFound("Content item")
	}
	f.items[item.ID] = cloneItem(item)
	return nil
}

func (f *fakeItemRepository) CreateWithRevision(ctx context.Context, item *contentitem.ContentItem, snapshot json.RawMessage, actorID string) error {
	if err := f.Create(ctx, item); err != nil {
		return err
	}
	if _, err := f.revisions.Create(ctx, revision.ParentContentItem, item.ID, snapshot, actorID); err != nil {
		// Both writes share a transaction: a failed revision append rolls
		// the item insert back too.
		delete(f.items, item.ID)
		return err
	}
	return nil
}

func (f *fakeItemRepository) UpdateWithRevision(ctx context.Context, item *contentitem.ContentItem, snapshot json.RawMessage, actorID string) error {
	if err := f.Update(ctx, item); err != nil {
		return err
	}
	_, err := f.revisions.Create(ctx, revision.ParentContentItem, item.ID, snapshot, actorID)
	return err
}

func (f *fakeItemRepository) FindByID(_ context.Context, id string) (*contentitem.ContentItem, error) {
	stored, ok := f.items[id]
	if !ok {
		return nil, apperr.NotFound("Content item")
	}
	return cloneItem(stored), nil
}

func (f *fakeItemRepository) FindByRoutePath(_ context.Context, routePath string) (*contentitem.ContentItem, error) {
	for _, stored := range f.items {
		if stored.RoutePath == routePath {
			return cloneItem(stored), nil
		}
	}
	return nil, apperr.NotFound("Content item")
}

func (f *fakeItemRepository) List(_ context.Context, contentTypeID string, _, _ int) ([]*contentitem.ContentItem, int, error) {
	matched := make([]*contentitem.ContentItem, 0)
	for _, stored := range f.items {
		if stored.ContentTypeID == contentTypeID {
			matched = append(matched, cloneItem(stored))
		}
	}
	return matched, len(matched), nil
}

func (f *fakeItemRepository) ExistsByRoutePath(_ context.Context, routePath string) (bool, error) {
	for _, stored := range f.items {
		if stored.RoutePath == routePath {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeItemRepository) MoveToTrash(_ context.Context, itemID string, deleted *contentitem.DeletedContentItem) error {
	if _, ok := f.items[itemID]; !ok {
		return apperr.NotFound("Content item")
	}
	delete(f.items, itemID)
	f.trash[deleted.ID] = deleted
	return nil
}

func (f *fakeItemRepository) RestoreFromTrash(_ context.Context, deletedID string, item *contentitem.ContentItem) error {
	if _, ok := f.trash[deletedID]; !ok {
		return apperr.NotFound("Deleted content item")
	}
	delete(f.trash, deletedID)
	f.items[item.ID] = cloneItem(item)
	return nil
}

func (f *fakeItemRepository) FindDeletedByID(_ context.Context, id string) (*contentitem.DeletedContentItem, error) {
	stored, ok := f.trash[id]
	if !ok {
		return nil, apperr.NotFound("Deleted content item")
	}
	return stored, nil
}

func (f *fakeItemRepository) ListDeleted(_ context.Context, contentTypeID string, _, _ int) ([]*contentitem.DeletedContentItem, int, error) {
	matched := make([]*contentitem.DeletedContentItem, 0)
	for _, stored := range f.trash {
		if stored.ContentTypeID == contentTypeID {
			matched = append(matched, stored)
		}
	}
	return matched, len(matched), nil
}

func (f *fakeItemRepository) PurgeDeleted(_ context.Context, id string) error {
	if _, ok := f.trash[id]; !ok {
		return apperr.NotFound("Deleted content item")
	}
	delete(f.trash, id)
	return nil
}

// fakeRouteCache records lookups so tests can assert cache behavior.
type fakeRouteCache struct {
	entries map[string]string
	hits    int
}

func newFakeRouteCache() *fakeRouteCache {
	return &fakeRouteCache{entries: make(map[string]string)}
}

func (f *fakeRouteCache) GetItemID(_ context.Context, routePath string) (string, bool) {
	itemID, ok := f.entries[routePath]
	if ok {
		f.hits++
	}
	return itemID, ok
}

func (f *fakeRouteCache) SetItemID(_ context.Context, routePath, itemID string) {
	f.entries[routePath] = itemID
}

func (f *fakeRouteCache) Invalidate(_ context.Context, routePath string) {
	delete(f.entries, routePath)
}

// fakeTypeRepository serves a single fixed content type schema.
type fakeTypeRepository struct {
	contentType *contenttype.ContentType
}

func (f *fakeTypeRepository) clone() *contenttype.ContentType {
	clone := *f.contentType
	clone.Fields = append([]field.Definition(nil), f.contentType.Fields...)
	return &clone
}

func (f *fakeTypeRepository) Create(context.Context, *contenttype.ContentType) error { return nil }
func (f *fakeTypeRepository) Update(context.Context, *contenttype.ContentType) error { return nil }
func (f *fakeTypeRepository) SoftDelete(context.Context, string, string) error       { return nil }

func (f *fakeTypeRepository) FindByID(_ context.Context, id string) (*contenttype.ContentType, error) {
	if id != f.contentType.ID {
		return nil, apperr.NotFound("Content type")
	}
	return f.clone(), nil
}

func (f *fakeTypeRepository) FindByDeveloperName(_ context.Context, developerName string) (*contenttype.ContentType, error) {
	if developerName != f.contentType.DeveloperName {
		return nil, apperr.NotFound("Content type")
	}
	return f.clone(), nil
}

func (f *fakeTypeRepository) List(context.Context, int, int) ([]*contenttype.ContentType, int, error) {
	return []*contenttype.ContentType{f.clone()}, 1, nil
}

func (f *fakeTypeRepository) ExistsByDeveloperName(_ context.Context, developerName string) (bool, error) {
	return developerName == f.contentType.DeveloperName, nil
}

func (f *fakeTypeRepository) CreateField(context.Context, *field.Definition) error     { return nil }
func (f *fakeTypeRepository) UpdateField(context.Context, *field.Definition) error     { return nil }
func (f *fakeTypeRepository) SoftDeleteField(context.Context, string) error            { return nil }
func (f *fakeTypeRepository) SaveFieldOrder(context.Context, string, []string) error   { return nil }

// # Harness

type testHarness struct {
	service   *contentitem.Service
	repo      *fakeItemRepository
	revisions *fakeRevisionRepository
	cache     *fakeRouteCache

	// viewRoutes stands in for the view table's half of the shared route
	// namespace.
	viewRoutes map[string]bool
}

func newTestHarness() *testHarness {
	blogType := &contenttype.ContentType{
		ID:                   "b3f0c8aa-0000-7000-8000-0000000000aa",
		LabelPlural:          "Blog Posts",
		LabelSingular:        "Blog Post",
		DeveloperName:        "blog-post",
		DefaultRouteTemplate: "{ContentTypeDeveloperName}/{PrimaryField}",
		PrimaryFieldID:       "f-title",
		Fields: []field.Definition{
			{
				ID:            "f-title",
				ContentTypeID: "b3f0c8aa-0000-7000-8000-0000000000aa",
				Label:         "Title",
				DeveloperName: "title",
				FieldType:     field.TypeSingleLineText,
				FieldOrder:    0,
				IsRequired:    true,
			},
			{
				ID:            "f-body",
				ContentTypeID: "b3f0c8aa-0000-7000-8000-0000000000aa",
				Label:         "Body",
				DeveloperName: "body",
				FieldType:     field.TypeLongText,
				FieldOrder:    1,
			},
		},
	}

	revisions := &fakeRevisionRepository{}
	repo := newFakeItemRepository(revisions)
	cache := newFakeRouteCache()
	viewRoutes := make(map[string]bool)
	routeTaken := func(_ context.Context, routePath string) (bool, error) {
		return viewRoutes[routePath], nil
	}

	return &testHarness{
		service:    contentitem.NewService(repo, &fakeTypeRepository{contentType: blogType}, revisions, cache, routeTaken),
		repo:       repo,
		revisions:  revisions,
		cache:      cache,
		viewRoutes: viewRoutes,
	}
}

func (h *testHarness) publishNew(t *testing.T, title string) *contentitem.ContentItem {
	t.Helper()
	item, err := h.service.CreateContentItem(context.Background(), "blog-post", contentitem.CreateInput{
		Content: map[string]any{"title": title, "body": "Some text."},
	})
	require.NoError(t, err)
	return item
}

func rawText(document field.Document, key string) any {
	value := document.Get(key)
	if value == nil {
		return nil
	}
	return value.Raw()
}

// # Create

func TestCreateContentItemPublishesImmediately(t *testing.T) {
	h := newTestHarness()

	item := h.publishNew(t, "Hello World")

	assert.True(t, item.IsPublished)
	assert.False(t, item.IsDraft)
	assert.Equal(t, "blog-post/hello-world", item.RoutePath)
	assert.Equal(t, "Hello World", rawText(item.PublishedContent, "title"))

	revisions, total, err := h.revisions.ListByParent(context.Background(), revision.ParentContentItem, item.ID, 25, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, revisions, 1)
}

func TestCreateContentItemPublishIsAtomicWithFirstRevision(t *testing.T) {
	h := newTestHarness()
	h.revisions.failCreate = errors.New("revision store is down")

	_, err := h.service.CreateContentItem(context.Background(), "blog-post", contentitem.CreateInput{
		Content: map[string]any{"title": "Hello World"},
	})
	require.Error(t, err)

	// Neither side of the transaction survives: no published item without
	// a revision, no revision without its item.
	assert.Empty(t, h.repo.items)
	assert.Empty(t, h.revisions.records)
}

func TestCreateContentItemDraftSkipsRequiredFields(t *testing.T) {
	h := newTestHarness()

	item, err := h.service.CreateContentItem(context.Background(), "blog-post", contentitem.CreateInput{
		Content:     map[string]any{"body": "No title yet."},
		SaveAsDraft: true,
	})
	require.NoError(t, err)

	assert.True(t, item.IsDraft)
	assert.False(t, item.IsPublished)
	assert.Empty(t, h.revisions.records)
}

func TestCreateContentItemRejectsRouteCollision(t *testing.T) {
	h := newTestHarness()
	h.publishNew(t, "Hello World")

	_, err := h.service.CreateContentItem(context.Background(), "blog-post", contentitem.CreateInput{
		Content: map[string]any{"title": "Hello World"},
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestCreateContentItemRejectsRouteOwnedByView(t *testing.T) {
	h := newTestHarness()
	h.viewRoutes["blog-post/hello-world"] = true

	_, err := h.service.CreateContentItem(context.Background(), "blog-post", contentitem.CreateInput{
		Content: map[string]any{"title": "Hello World"},
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestCreateContentItemRejectsUnknownFields(t *testing.T) {
	h := newTestHarness()

	_, err := h.service.CreateContentItem(context.Background(), "blog-post", contentitem.CreateInput{
		Content:     map[string]any{"title": "Ok", "subtitle": "No such field"},
		SaveAsDraft: true,
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	require.Len(t, appError.Details, 1)
	assert.Equal(t, "subtitle", appError.Details[0].Field)
}

// # Edit and Publish

func TestEditContentItemOnlyTouchesDraft(t *testing.T) {
	h := newTestHarness()
	item := h.publishNew(t, "Hello World")

	edited, err := h.service.EditContentItem(context.Background(), item.ID, contentitem.EditInput{
		Content: map[string]any{"title": "Hello Again"},
	})
	require.NoError(t, err)

	assert.True(t, edited.IsDraft)
	assert.Equal(t, "Hello Again", rawText(edited.DraftContent, "title"))
	// Absent keys keep their draft values.
	assert.Equal(t, "Some text.", rawText(edited.DraftContent, "body"))
	// Published body is untouched until the next publish.
	assert.Equal(t, "Hello World", rawText(edited.PublishedContent, "title"))
}

func TestPublishValidatesDraftAgainstSchema(t *testing.T) {
	h := newTestHarness()

	item, err := h.service.CreateContentItem(context.Background(), "blog-post", contentitem.CreateInput{
		Content:     map[string]any{"body": "No title."},
		SaveAsDraft: true,
		RoutePath:   "drafts/one",
	})
	require.NoError(t, err)

	_, err = h.service.PublishContentItem(context.Background(), item.ID)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	_, err = h.service.EditContentItem(context.Background(), item.ID, contentitem.EditInput{
		Content: map[string]any{"title": "Found a title"},
	})
	require.NoError(t, err)

	published, err := h.service.PublishContentItem(context.Background(), item.ID)
	require.NoError(t, err)

	assert.True(t, published.IsPublished)
	assert.False(t, published.IsDraft)
	assert.Equal(t, "Found a title", rawText(published.PublishedContent, "title"))
	assert.Len(t, h.revisions.records, 1)
}

func TestUnpublishKeepsPublishedBody(t *testing.T) {
	h := newTestHarness()
	item := h.publishNew(t, "Hello World")

	unpublished, err := h.service.UnpublishContentItem(context.Background(), item.ID)
	require.NoError(t, err)

	assert.False(t, unpublished.IsPublished)
	assert.Equal(t, "Hello World", rawText(unpublished.PublishedContent, "title"))

	_, cached := h.cache.entries[item.RoutePath]
	assert.False(t, cached)

	_, err = h.service.UnpublishContentItem(context.Background(), item.ID)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

// # Draft Discard and Revert

func TestDiscardDraftRequiresPublishedBody(t *testing.T) {
	h := newTestHarness()

	item, err := h.service.CreateContentItem(context.Background(), "blog-post", contentitem.CreateInput{
		Content:     map[string]any{"title": "Never published"},
		SaveAsDraft: true,
	})
	require.NoError(t, err)

	_, err = h.service.DiscardDraftContentItem(context.Background(), item.ID)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestDiscardDraftResetsToPublished(t *testing.T) {
	h := newTestHarness()
	item := h.publishNew(t, "Hello World")

	_, err := h.service.EditContentItem(context.Background(), item.ID, contentitem.EditInput{
		Content: map[string]any{"title": "Abandoned edit"},
	})
	require.NoError(t, err)

	discarded, err := h.service.DiscardDraftContentItem(context.Background(), item.ID)
	require.NoError(t, err)

	assert.False(t, discarded.IsDraft)
	assert.Equal(t, "Hello World", rawText(discarded.DraftContent, "title"))
}

func TestRevertAppendsNewRevision(t *testing.T) {
	h := newTestHarness()
	item := h.publishNew(t, "First version")
	firstRevisionID := h.revisions.records[0].ID

	_, err := h.service.EditContentItem(context.Background(), item.ID, contentitem.EditInput{
		Content: map[string]any{"title": "Second version"},
	})
	require.NoError(t, err)
	_, err = h.service.PublishContentItem(context.Background(), item.ID)
	require.NoError(t, err)
	require.Len(t, h.revisions.records, 2)

	reverted, err := h.service.RevertContentItem(context.Background(), item.ID, firstRevisionID)
	require.NoError(t, err)

	// History is append-only: the revert adds a third entry.
	assert.Len(t, h.revisions.records, 3)
	assert.Equal(t, "First version", rawText(reverted.PublishedContent, "title"))
	assert.Equal(t, "First version", rawText(reverted.DraftContent, "title"))
}

func TestRevertRejectsForeignRevision(t *testing.T) {
	h := newTestHarness()
	first := h.publishNew(t, "Mine")
	second := h.publishNew(t, "Yours")

	_, err := h.service.RevertContentItem(context.Background(), first.ID, h.revisions.records[1].ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	_, err = h.service.RevertContentItem(context.Background(), second.ID, h.revisions.records[1].ID)
	require.NoError(t, err)
}

// # Trash

func TestDeleteAndRestorePreservesIdentity(t *testing.T) {
	h := newTestHarness()
	item := h.publishNew(t, "Hello World")

	deleted, err := h.service.DeleteContentItem(context.Background(), item.ID)
	require.NoError(t, err)

	assert.Equal(t, item.ID, deleted.OriginalItemID)
	assert.Equal(t, "Hello World", deleted.PrimaryFieldValue)
	assert.Equal(t, "blog-post/hello-world", deleted.RoutePath)

	_, err = h.service.GetContentItem(context.Background(), item.ID)
	require.Error(t, err)

	restored, err := h.service.RestoreContentItem(context.Background(), deleted.ID)
	require.NoError(t, err)

	assert.Equal(t, item.ID, restored.ID)
	assert.Equal(t, "blog-post/hello-world", restored.RoutePath)
	assert.True(t, restored.IsPublished)
	assert.False(t, restored.IsDraft)
	assert.Equal(t, "Hello World", rawText(restored.PublishedContent, "title"))
	assert.Empty(t, h.repo.trash)
}

func TestRestoreConflictsWhenRouteWasClaimed(t *testing.T) {
	h := newTestHarness()
	item := h.publishNew(t, "Hello World")

	deleted, err := h.service.DeleteContentItem(context.Background(), item.ID)
	require.NoError(t, err)

	// Another item claims the route while the original sits in the trash.
	h.publishNew(t, "Hello World")

	_, err = h.service.RestoreContentItem(context.Background(), deleted.ID)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestRestoreConflictsWhenViewClaimedRoute(t *testing.T) {
	h := newTestHarness()
	item := h.publishNew(t, "Hello World")

	deleted, err := h.service.DeleteContentItem(context.Background(), item.ID)
	require.NoError(t, err)

	// A view claims the route while the original sits in the trash.
	h.viewRoutes["blog-post/hello-world"] = true

	_, err = h.service.RestoreContentItem(context.Background(), deleted.ID)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestPurgeRemovesTrashEntry(t *testing.T) {
	h := newTestHarness()
	item := h.publishNew(t, "Hello World")

	deleted, err := h.service.DeleteContentItem(context.Background(), item.ID)
	require.NoError(t, err)

	require.NoError(t, h.service.PurgeDeletedContentItem(context.Background(), deleted.ID))
	assert.Empty(t, h.repo.trash)

	err = h.service.PurgeDeletedContentItem(context.Background(), deleted.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

// # Route Resolution

func TestGetByRoutePathWarmsCache(t *testing.T) {
	h := newTestHarness()
	item := h.publishNew(t, "Hello World")

	resolved, err := h.service.GetByRoutePath(context.Background(), "/blog-post/hello-world/")
	require.NoError(t, err)
	assert.Equal(t, item.ID, resolved.ID)
	assert.Equal(t, item.ID, h.cache.entries["blog-post/hello-world"])

	_, err = h.service.GetByRoutePath(context.Background(), "blog-post/hello-world")
	require.NoError(t, err)
	assert.Equal(t, 1, h.cache.hits)
}

func TestGetByRoutePathRecoversFromStaleCache(t *testing.T) {
	h := newTestHarness()
	item := h.publishNew(t, "Hello World")

	// Poison the cache with an id that no longer exists.
	h.cache.SetItemID(context.Background(), item.RoutePath, "gone")

	resolved, err := h.service.GetByRoutePath(context.Background(), item.RoutePath)
	require.NoError(t, err)
	assert.Equal(t, item.ID, resolved.ID)
	assert.Equal(t, item.ID, h.cache.entries[item.RoutePath])
}

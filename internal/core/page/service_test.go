// Copyright (c) 2026 Raytha. All rights reserved.

package page_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaythaHQ/raytha-sub000/internal/core/contentitem"
	"github.com/RaythaHQ/raytha-sub000/internal/core/contenttype"
	"github.com/RaythaHQ/raytha-sub000/internal/core/field"
	"github.com/RaythaHQ/raytha-sub000/internal/core/menu"
	"github.com/RaythaHQ/raytha-sub000/internal/core/page"
	"github.com/RaythaHQ/raytha-sub000/internal/core/template"
	"github.com/RaythaHQ/raytha-sub000/internal/core/view"
	"github.com/RaythaHQ/raytha-sub000/internal/platform/apperr"
	"github.com/RaythaHQ/raytha-sub000/pkg/pagination"
)

// fakeItemResolver serves items by route path.
type fakeItemResolver struct {
	byRoute map[string]*contentitem.ContentItem
	titles  map[string]string
}

func (f *fakeItemResolver) GetByRoutePath(_ context.Context, routePath string) (*contentitem.ContentItem, error) {
	item, ok := f.byRoute[routePath]
	if !ok {
		return nil, apperr.NotFound("Content item")
	}
	return item, nil
}

func (f *fakeItemResolver) PrimaryDisplayValue(_ context.Context, id string) (string, error) {
	title, ok := f.titles[id]
	if !ok {
		return "", apperr.NotFound("Content item")
	}
	return title, nil
}

// fakeTemplateProvider serves web templates by id.
type fakeTemplateProvider struct {
	templates map[string]*template.WebTemplate
}

func (f *fakeTemplateProvider) GetWebTemplate(_ context.Context, id string) (*template.WebTemplate, error) {
	webTemplate, ok := f.templates[id]
	if !ok {
		return nil, apperr.NotFound("Web template")
	}
	return webTemplate, nil
}

func (f *fakeTemplateProvider) GetWebTemplateByDeveloperName(_ context.Context, developerName string) (*template.WebTemplate, error) {
	for _, webTemplate := range f.templates {
		if webTemplate.DeveloperName == developerName {
			return webTemplate, nil
		}
	}
	return nil, apperr.NotFound("Web template")
}

// fakeViewResolver serves one published or unpublished view by route path.
type fakeViewResolver struct {
	byRoute map[string]*view.View
	result  *view.ListResult
}

func (f *fakeViewResolver) GetViewByRoutePath(_ context.Context, routePath string) (*view.View, error) {
	resolved, ok := f.byRoute[routePath]
	if !ok {
		return nil, apperr.NotFound("View")
	}
	return resolved, nil
}

func (f *fakeViewResolver) ListItems(_ context.Context, _ string, _ pagination.Params, _ *view.FilterNode, _ []view.Sort) (*view.ListResult, error) {
	return f.result, nil
}

// fakeMenuProvider serves one main menu.
type fakeMenuProvider struct {
	mainMenu *menu.NavigationMenu
}

func (f *fakeMenuProvider) GetMainMenu(context.Context) (*menu.NavigationMenu, error) {
	if f.mainMenu == nil {
		return nil, apperr.NotFound("Main menu")
	}
	return f.mainMenu, nil
}

// fakeSchemaRepository serves a single fixed content type.
type fakeSchemaRepository struct {
	contentType *contenttype.ContentType
}

func (f *fakeSchemaRepository) Create(context.Context, *contenttype.ContentType) error { return nil }
func (f *fakeSchemaRepository) Update(context.Context, *contenttype.ContentType) error { return nil }
func (f *fakeSchemaRepository) SoftDelete(context.Context, string, string) error       { return nil }

func (f *fakeSchemaRepository) FindByID(_ context.Context, id string) (*contenttype.ContentType, error) {
	if id != f.contentType.ID {
		return nil, apperr.NotFound("Content type")
	}
	return f.contentType, nil
}

func (f *fakeSchemaRepository) FindByDeveloperName(_ context.Context, developerName string) (*contenttype.ContentType, error) {
	if developerName != f.contentType.DeveloperName {
		return nil, apperr.NotFound("Content type")
	}
	return f.contentType, nil
}

func (f *fakeSchemaRepository) List(context.Context, int, int) ([]*contenttype.ContentType, int, error) {
	return []*contenttype.ContentType{f.contentType}, 1, nil
}

func (f *fakeSchemaRepository) ExistsByDeveloperName(_ context.Context, developerName string) (bool, error) {
	return developerName == f.contentType.DeveloperName, nil
}

func (f *fakeSchemaRepository) CreateField(context.Context, *field.Definition) error   { return nil }
func (f *fakeSchemaRepository) UpdateField(context.Context, *field.Definition) error   { return nil }
func (f *fakeSchemaRepository) SoftDeleteField(context.Context, string) error          { return nil }
func (f *fakeSchemaRepository) SaveFieldOrder(context.Context, string, []string) error { return nil }

func articleType() *contenttype.ContentType {
	return &contenttype.ContentType{
		ID:             "type-1",
		LabelSingular:  "Article",
		DeveloperName:  "article",
		PrimaryFieldID: "f-title",
		Fields: []field.Definition{
			{
				ID: "f-title", ContentTypeID: "type-1", Label: "Title",
				DeveloperName: "title", FieldType: field.TypeSingleLineText, FieldOrder: 0,
			},
			{
				ID: "f-category", ContentTypeID: "type-1", Label: "Category",
				DeveloperName: "category", FieldType: field.TypeSingleSelect, FieldOrder: 1,
				Choices: []field.Choice{
					{Label: "Technology", DeveloperName: "tech"},
				},
			},
		},
	}
}

func publishedArticle(t *testing.T, templateID string) *contentitem.ContentItem {
	t.Helper()

	title, err := field.ValueFrom(field.TypeSingleLineText, "Hello World")
	require.NoError(t, err)
	category, err := field.ValueFrom(field.TypeSingleSelect, "tech")
	require.NoError(t, err)

	item := &contentitem.ContentItem{
		ID:               "item-1",
		ContentTypeID:    "type-1",
		IsPublished:      true,
		RoutePath:        "article/hello-world",
		PublishedContent: field.Document{"title": title, "category": category},
		CreatedAt:        time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC),
	}
	if templateID != "" {
		item.WebTemplateID = &templateID
	}
	return item
}

func newPageService(item *contentitem.ContentItem, templateContent string) *page.Service {
	return newPageServiceWithViews(item, nil, templateContent)
}

func newPageServiceWithViews(item *contentitem.ContentItem, views *fakeViewResolver, templateContent string) *page.Service {
	items := &fakeItemResolver{
		byRoute: map[string]*contentitem.ContentItem{},
		titles:  map[string]string{},
	}
	if item != nil {
		items.byRoute[item.RoutePath] = item
	}

	templates := &fakeTemplateProvider{templates: map[string]*template.WebTemplate{
		"tpl-1": {ID: "tpl-1", Label: "Article Page", DeveloperName: "article-page", Content: templateContent},
		"tpl-builtin": {
			ID: "tpl-builtin", Label: "HTML Empty", IsBuiltIn: true,
			DeveloperName: template.BuiltInWebTemplateDeveloperName,
			Content:       templateContent,
		},
	}}

	menus := &fakeMenuProvider{mainMenu: &menu.NavigationMenu{
		ID: "menu-1", Label: "Main", DeveloperName: "main", IsMainMenu: true,
		Items: []menu.NavigationMenuItem{
			{ID: "mi-1", NavigationMenuID: "menu-1", Label: "Home", URL: "/", Ordinal: 0},
			{ID: "mi-2", NavigationMenuID: "menu-1", Label: "Hidden", URL: "/hidden", Ordinal: 1, IsDisabled: true},
		},
	}}

	org := page.Organization{
		Name: "Acme Publishing", WebsiteURL: "https://acme.test",
		TimeZone: "UTC", DateFormat: "Jan 2, 2006",
	}

	var viewResolver page.ViewResolver
	if views != nil {
		viewResolver = views
	}

	return page.NewService(items, viewResolver, templates, menus, &fakeSchemaRepository{contentType: articleType()}, org, time.UTC)
}

func publishedListingView() *fakeViewResolver {
	resolved := &view.View{
		ID:                  "view-1",
		ContentTypeID:       "type-1",
		Label:               "All Articles",
		DeveloperName:       "all-articles",
		RoutePath:           "article/all-articles",
		IsPublished:         true,
		DefaultItemsPerPage: 25,
		MaxItemsPerPage:     250,
	}
	return &fakeViewResolver{
		byRoute: map[string]*view.View{resolved.RoutePath: resolved},
		result: &view.ListResult{
			View: resolved,
			Items: []view.ItemRow{
				{ID: "item-1", RoutePath: "article/hello-world", IsPublished: true, Fields: map[string]string{"title": "Hello World"}},
				{ID: "item-2", RoutePath: "article/second-post", IsPublished: true, Fields: map[string]string{"title": "Second Post"}},
			},
			Total: 2,
		},
	}
}

func TestRenderRouteRendersPublishedItem(t *testing.T) {
	service := newPageService(publishedArticle(t, "tpl-1"),
		`<h1>{{ ContentItem.PublishedContent.title }}</h1>`+
			`<p>{{ ContentItem.PublishedContent.category.Text }}</p>`+
			`<footer>{{ CurrentOrganization.OrganizationName }}</footer>`)

	body, err := service.RenderRoute(context.Background(), "article/hello-world", page.RequestInfo{Path: "/article/hello-world"})
	require.NoError(t, err)

	assert.Contains(t, body, "<h1>Hello World</h1>")
	assert.Contains(t, body, "<p>Technology</p>")
	assert.Contains(t, body, "<footer>Acme Publishing</footer>")
}

func TestRenderRouteNormalizesLookupPath(t *testing.T) {
	service := newPageService(publishedArticle(t, "tpl-1"), `{{ ContentItem.PrimaryField }}`)

	body, err := service.RenderRoute(context.Background(), "/article//hello-world/", page.RequestInfo{})
	require.NoError(t, err)
	assert.Equal(t, "Hello World", body)
}

func TestRenderRouteExposesMainMenuWithoutDisabledItems(t *testing.T) {
	service := newPageService(publishedArticle(t, "tpl-1"), `<nav>{{ NavigationMenu.Label }}</nav>`)

	body, err := service.RenderRoute(context.Background(), "article/hello-world", page.RequestInfo{})
	require.NoError(t, err)
	assert.Contains(t, body, "<nav>Main</nav>")
}

func TestRenderRouteUnknownRouteIsNotFound(t *testing.T) {
	service := newPageService(publishedArticle(t, "tpl-1"), ``)

	_, err := service.RenderRoute(context.Background(), "no/such/page", page.RequestInfo{})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestRenderRouteUnpublishedItemIsNotFound(t *testing.T) {
	item := publishedArticle(t, "tpl-1")
	item.IsPublished = false
	service := newPageService(item, ``)

	_, err := service.RenderRoute(context.Background(), "article/hello-world", page.RequestInfo{})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestRenderRouteItemWithoutTemplateIsNotFound(t *testing.T) {
	service := newPageService(publishedArticle(t, ""), ``)

	_, err := service.RenderRoute(context.Background(), "article/hello-world", page.RequestInfo{})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestRenderRouteFallsBackToPublishedView(t *testing.T) {
	service := newPageServiceWithViews(nil, publishedListingView(),
		`<p>{{ ContentItemListResult.TotalCount }} articles</p>`)

	body, err := service.RenderRoute(context.Background(), "article/all-articles", page.RequestInfo{})
	require.NoError(t, err)
	assert.Contains(t, body, "<p>2 articles</p>")
}

func TestRenderRouteItemWinsOverViewOnSameRoute(t *testing.T) {
	item := publishedArticle(t, "tpl-1")
	item.RoutePath = "article/all-articles"
	service := newPageServiceWithViews(item, publishedListingView(), `{{ ContentItem.PrimaryField }}`)

	body, err := service.RenderRoute(context.Background(), "article/all-articles", page.RequestInfo{})
	require.NoError(t, err)
	assert.Equal(t, "Hello World", body)
}

func TestRenderRouteUnpublishedViewIsNotFound(t *testing.T) {
	views := publishedListingView()
	views.byRoute["article/all-articles"].IsPublished = false
	service := newPageServiceWithViews(nil, views, ``)

	_, err := service.RenderRoute(context.Background(), "article/all-articles", page.RequestInfo{})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

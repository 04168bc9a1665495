// Package elasticsearch keeps a full-text index of posts. The primary store stays the
// source of truth; the index only returns matching ids.
package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/climate-action-backend/internal/domain/entity"
	"github.com/oksasatya/climate-action-backend/internal/domain/repository"
)

const requestTimeout = 3 * time.Second

type PostIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewPostIndex(es *elasticsearch.Client, index string) *PostIndex {
	return &PostIndex{es: es, index: index}
}

var postMapping = map[string]any{
	"mappings": map[string]any{
		"properties": map[string]any{
			"title":     map[string]any{"type": "text"},
			"text":      map[string]any{"type": "text"},
			"category":  map[string]any{"type": "keyword"},
			"authorId":  map[string]any{"type": "keyword"},
			"createdAt": map[string]any{"type": "date"},
		},
	},
}

// EnsureIndex creates the index with its mapping when it does not exist yet.
func (x *PostIndex) EnsureIndex(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.es.Indices.Exists([]string{x.index}, x.es.Indices.Exists.WithContext(c))
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	_ = res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	b, _ := json.Marshal(postMapping)
	res, err = x.es.Indices.Create(x.index, x.es.Indices.Create.WithContext(c), x.es.Indices.Create.WithBody(bytes.NewReader(b)))
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("create index: %s", res.Status())
	}
	return nil
}

// Index writes p with its UpdatedAt as external version, so an older copy never replaces a
// newer one. A version conflict means the index already holds this version or a later one.
func (x *PostIndex) Index(ctx context.Context, p *entity.Post) error {
	doc := map[string]any{
		"id":        p.ID,
		"title":     p.Title,
		"text":      p.Text,
		"category":  p.Category,
		"authorId":  p.Author.UserID,
		"createdAt": p.CreatedAt.Format(time.RFC3339Nano),
		"updatedAt": p.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: x.index, DocumentID: p.ID, Body: bytes.NewReader(b), Refresh: "true"}
	if !p.UpdatedAt.IsZero() {
		version := int(p.UpdatedAt.UnixNano())
		req.Version = &version
		req.VersionType = "external"
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return fmt.Errorf("index post: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode == http.StatusConflict {
		return nil
	}
	if res.IsError() {
		return fmt.Errorf("index post: %s", res.Status())
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID string `json:"_id"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search runs a multi_match over title and text, newest first.
func (x *PostIndex) Search(ctx context.Context, query string, offset, limit int) ([]string, int64, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":    query,
				"fields":   []string{"title^2", "text"},
				"operator": "and",
			},
		},
		"sort":             []any{map[string]any{"createdAt": map[string]any{"order": "desc"}}},
		"from":             offset,
		"size":             limit,
		"track_total_hits": true,
		"_source":          false,
	}
	b, _ := json.Marshal(body)

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.es.Search(
		x.es.Search.WithContext(c),
		x.es.Search.WithIndex(x.index),
		x.es.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("search posts: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, 0, fmt.Errorf("search posts: %s", res.Status())
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, 0, fmt.Errorf("decode search response: %w", err)
	}
	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, parsed.Hits.Total.Value, nil
}

var _ repository.PostSearchIndex = (*PostIndex)(nil)

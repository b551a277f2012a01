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
	"github.com/google/uuid"

	"github.com/oksasatya/go-barber/internal/domain/entity"
	"github.com/oksasatya/go-barber/internal/domain/repository"
)

// NotificationsMapping is the index body passed to helpers.EnsureESIndex.
const NotificationsMapping = `{
  "mappings": {
    "properties": {
      "content":    {"type": "text"},
      "user":       {"type": "keyword"},
      "read":       {"type": "boolean"},
      "created_at": {"type": "date"},
      "updated_at": {"type": "date"}
    }
  }
}`

type notificationDoc struct {
	Content   string    `json:"content"`
	User      string    `json:"user"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d notificationDoc) toEntity(id string) entity.Notification {
	return entity.Notification{
		ID:        id,
		Content:   d.Content,
		User:      d.User,
		Read:      d.Read,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// NotificationRepository stores the provider feed as documents in a single index.
type NotificationRepository struct {
	es    *elasticsearch.Client
	index string
	now   func() time.Time
}

func NewNotificationRepository(es *elasticsearch.Client, index string) *NotificationRepository {
	return &NotificationRepository{es: es, index: index, now: time.Now}
}

func (r *NotificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	now := r.now().UTC()
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.Read = false
	n.CreatedAt, n.UpdatedAt = now, now

	body, err := json.Marshal(notificationDoc{
		Content: n.Content, User: n.User, Read: n.Read,
		CreatedAt: n.CreatedAt, UpdatedAt: n.UpdatedAt,
	})
	if err != nil {
		return err
	}
	res, err := esapi.IndexRequest{
		Index:      r.index,
		DocumentID: n.ID,
		Body:       bytes.NewReader(body),
		Refresh:    "true",
	}.Do(ctx, r.es)
	if err != nil {
		return fmt.Errorf("index notification: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index notification: %s", res.Status())
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string          `json:"_id"`
			Source notificationDoc `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// ListByUser returns the newest notifications first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]entity.Notification, error) {
	query := map[string]any{
		"size":  limit,
		"query": map[string]any{"term": map[string]any{"user": userID}},
		"sort":  []any{map[string]any{"created_at": map[string]any{"order": "desc"}}},
	}
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}
	res, err := esapi.SearchRequest{
		Index: []string{r.index},
		Body:  bytes.NewReader(body),
	}.Do(ctx, r.es)
	if err != nil {
		return nil, fmt.Errorf("search notifications: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return []entity.Notification{}, nil
	}
	if res.IsError() {
		return nil, fmt.Errorf("search notifications: %s", res.Status())
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode notifications: %w", err)
	}
	out := make([]entity.Notification, 0, len(sr.Hits.Hits))
	for _, h := range sr.Hits.Hits {
		out = append(out, h.Source.toEntity(h.ID))
	}
	return out, nil
}

// MarkRead flips read to true and returns the updated document.
func (r *NotificationRepository) MarkRead(ctx context.Context, id string) (*entity.Notification, error) {
	body, err := json.Marshal(map[string]any{
		"doc": map[string]any{"read": true, "updated_at": r.now().UTC()},
	})
	if err != nil {
		return nil, err
	}
	res, err := esapi.UpdateRequest{
		Index:      r.index,
		DocumentID: id,
		Body:       bytes.NewReader(body),
		Refresh:    "true",
	}.Do(ctx, r.es)
	if err != nil {
		return nil, fmt.Errorf("update notification: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return nil, repository.ErrNotFound
	}
	if res.IsError() {
		return nil, fmt.Errorf("update notification: %s", res.Status())
	}
	return r.get(ctx, id)
}

func (r *NotificationRepository) get(ctx context.Context, id string) (*entity.Notification, error) {
	res, err := esapi.GetRequest{Index: r.index, DocumentID: id}.Do(ctx, r.es)
	if err != nil {
		return nil, fmt.Errorf("get notification: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return nil, repository.ErrNotFound
	}
	if res.IsError() {
		return nil, fmt.Errorf("get notification: %s", res.Status())
	}
	var doc struct {
		ID     string          `json:"_id"`
		Found  bool            `json:"found"`
		Source notificationDoc `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode notification: %w", err)
	}
	if !doc.Found {
		return nil, repository.ErrNotFound
	}
	n := doc.Source.toEntity(doc.ID)
	return &n, nil
}

var _ repository.NotificationRepository = (*NotificationRepository)(nil)

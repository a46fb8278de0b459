// internal/elastic/index.go
package elastic

import (
	"bytes"
	"context"
	"fmt"

	es "github.com/elastic/go-elasticsearch/v8"
)

const (
	IdxUsers  = "club_users_v1"
	IdxEvents = "club_events_v1"
	IdxPosts  = "club_posts_v1"
)

func EnsureIndexes(ctx context.Context, c *es.Client) error {
	mapping := `{"settings":{"number_of_shards":1},"mappings":{"dynamic":"strict","properties":{
		"username":{"type":"keyword"},"email":{"type":"keyword"},"name":{"type":"text"},
		"codeforces_handle":{"type":"keyword"},"atcoder_handle":{"type":"keyword"},
		"vjudge_handle":{"type":"keyword"},"updated_at":{"type":"date"}
	}}}`
	if err := ensure(ctx, c, IdxUsers, mapping); err != nil {
		return err
	}

	mapping = `{"settings":{"number_of_shards":1},"mappings":{"dynamic":"strict","properties":{
		"title":{"type":"text"},"description":{"type":"text"},"type":{"type":"keyword"},
		"scope":{"type":"keyword"},"starts_at":{"type":"date"},"ends_at":{"type":"date"},
		"open_for_attendance":{"type":"boolean"},"updated_at":{"type":"date"}
	}}}`
	if err := ensure(ctx, c, IdxEvents, mapping); err != nil {
		return err
	}

	mapping = `{"settings":{"number_of_shards":1},"mappings":{"dynamic":"strict","properties":{
		"title":{"type":"text"},"slug":{"type":"keyword"},"body":{"type":"text"},
		"tags":{"type":"keyword"},"published":{"type":"boolean"},
		"author_id":{"type":"keyword"},"updated_at":{"type":"date"}
	}}}`
	return ensure(ctx, c, IdxPosts, mapping)
}

func ensure(ctx context.Context, c *es.Client, index, body string) error {
	exists, _ := c.Indices.Exists([]string{index})
	if exists.StatusCode == 200 {
		return nil
	}
	_, err := c.Indices.Create(index, c.Indices.Create.WithBody(bytes.NewBufferString(body)), c.Indices.Create.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("create index %s: %w", index, err)
	}
	return nil
}

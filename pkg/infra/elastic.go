package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
)

type ElasticsearchConfig struct {
	Addresses []string
	Username  string
	Password  string
}

func NewElasticSearchConnection(cfg ElasticsearchConfig) (*elasticsearch.Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := es.Ping(es.Ping.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch ping returned %s", res.Status())
	}
	return es, nil
}

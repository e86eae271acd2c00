package store

import (
	"context"
	"errors"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"
	"github.com/serroba/shortlink/internal/shortener"
)

// CosmosStore is an Azure Cosmos DB implementation of shortener.Repository.
// Items are partitioned by their short key, which is also the item id.
type CosmosStore struct {
	container *azcosmos.ContainerClient
}

// NewCosmosContainer connects to a Cosmos DB account with a key credential and
// returns a client for one container.
func NewCosmosContainer(endpoint, key, database, container string) (*azcosmos.ContainerClient, error) {
	cred, err := azcosmos.NewKeyCredential(key)
	if err != nil {
		return nil, err
	}

	client, err := azcosmos.NewClientWithKey(endpoint, cred, nil)
	if err != nil {
		return nil, err
	}

	return client.NewContainer(database, container)
}

// NewCosmosStore creates a new Cosmos DB-backed link store.
func NewCosmosStore(container *azcosmos.ContainerClient) *CosmosStore {
	return &CosmosStore{container: container}
}

func (c *CosmosStore) Get(ctx context.Context, key shortener.Key) (*shortener.ShortLink, error) {
	resp, err := c.container.ReadItem(ctx, partitionKey(key), string(key), nil)
	if err != nil {
		if hasStatus(err, http.StatusNotFound) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	return unmarshalLink(resp.Value)
}

func (c *CosmosStore) Upsert(ctx context.Context, link *shortener.ShortLink) error {
	item, err := marshalLink(link)
	if err != nil {
		return err
	}

	_, err = c.container.UpsertItem(ctx, partitionKey(link.Key), item, nil)

	return err
}

func (c *CosmosStore) Create(ctx context.Context, link *shortener.ShortLink) error {
	item, err := marshalLink(link)
	if err != nil {
		return err
	}

	_, err = c.container.CreateItem(ctx, partitionKey(link.Key), item, nil)
	if hasStatus(err, http.StatusConflict) {
		return shortener.ErrConflict
	}

	return err
}

// Ping reads the container properties to check connectivity and credentials.
func (c *CosmosStore) Ping(ctx context.Context) error {
	_, err := c.container.Read(ctx, nil)

	return err
}

func partitionKey(key shortener.Key) azcosmos.PartitionKey {
	return azcosmos.NewPartitionKeyString(string(key))
}

func hasStatus(err error, status int) bool {
	var respErr *azcore.ResponseError

	return errors.As(err, &respErr) && respErr.StatusCode == status
}

var _ shortener.Repository = (*CosmosStore)(nil)

package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/scorestream/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamo keeps items keyed by PK for a single table.
type fakeDynamo struct {
	dynamodbiface.DynamoDBAPI
	items      map[string]map[string]*dynamodb.AttributeValue
	batchCalls int
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]*dynamodb.AttributeValue)}
}

func (f *fakeDynamo) PutItemWithContext(ctx aws.Context, in *dynamodb.PutItemInput, opts ...request.Option) (*dynamodb.PutItemOutput, error) {
	f.items[*in.Item["PK"].S] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItemWithContext(ctx aws.Context, in *dynamodb.GetItemInput, opts ...request.Option) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{Item: f.items[*in.Key["PK"].S]}, nil
}

func (f *fakeDynamo) BatchGetItemWithContext(ctx aws.Context, in *dynamodb.BatchGetItemInput, opts ...request.Option) (*dynamodb.BatchGetItemOutput, error) {
	f.batchCalls++
	out := &dynamodb.BatchGetItemOutput{Responses: make(map[string][]map[string]*dynamodb.AttributeValue)}
	for table, ka := range in.RequestItems {
		if len(ka.Keys) > maxBatchKeys {
			return nil, fmt.Errorf("too many keys: %d", len(ka.Keys))
		}
		for _, key := range ka.Keys {
			if item, ok := f.items[*key["PK"].S]; ok {
				out.Responses[table] = append(out.Responses[table], item)
			}
		}
	}
	return out, nil
}

func stores() map[string]MetadataStore {
	return map[string]MetadataStore{
		"memory": NewMemoryStore(),
		"dynamo": NewDynamoStoreWithClient(newFakeDynamo(), "scores"),
	}
}

func TestMetadataStores(t *testing.T) {
	ctx := context.Background()
	for name, store := range stores() {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			md := model.Metadata{ScoreId: "a", Title: "Invention 1", Composer: "Bach", Year: 1723}
			require.NoError(t, store.PutMetadata(ctx, md))
			require.NoError(t, store.PutMetadata(ctx, model.Metadata{ScoreId: "b", Title: "Untitled"}))

			got, err := store.GetMetadata(ctx, "a")
			assert.NoError(err)
			assert.Equal(md, got)

			_, err = store.GetMetadata(ctx, "missing")
			assert.True(errors.Is(err, ErrNotFound))

			err = store.PutMetadata(ctx, model.Metadata{Title: "no id"})
			assert.True(errors.Is(err, ErrMissingId))

			many, err := store.GetMetadatas(ctx, []string{"a", "b", "missing"})
			assert.NoError(err)
			assert.Len(many, 2)
			assert.Equal(uint(0), many["b"].Year)
			assert.Equal("Untitled", many["b"].Title)
		})
	}
}

func TestDynamoStoreBatchesLargeLookups(t *testing.T) {
	fake := newFakeDynamo()
	store := NewDynamoStoreWithClient(fake, "scores")
	ctx := context.Background()

	var ids []string
	for i := 0; i < 150; i++ {
		id := fmt.Sprintf("score-%d", i)
		ids = append(ids, id)
		require.NoError(t, store.PutMetadata(ctx, model.Metadata{ScoreId: id}))
	}
	res, err := store.GetMetadatas(ctx, ids)
	assert.NoError(t, err)
	assert.Len(t, res, 150)
	assert.Equal(t, 2, fake.batchCalls)
}

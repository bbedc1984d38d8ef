package db

import (
	"context"
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/scorestream/constants"
	"github.com/jsphweid/scorestream/model"
	"github.com/pkg/errors"
)

// BatchGetItem takes at most this many keys per request.
const maxBatchKeys = 100

type DynamoStore struct {
	client dynamodbiface.DynamoDBAPI
	table  string
}

// NewDynamoStore connects using the SCORESTREAM_DYNAMO_* settings.
func NewDynamoStore() (*DynamoStore, error) {
	cfg := &aws.Config{Region: aws.String(constants.GetDynamoRegion())}
	if endpoint := constants.GetDynamoEndpoint(); endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "Could not create a new DynamoDB session")
	}
	return NewDynamoStoreWithClient(dynamodb.New(sess), constants.GetDynamoTable()), nil
}

func NewDynamoStoreWithClient(client dynamodbiface.DynamoDBAPI, table string) *DynamoStore {
	return &DynamoStore{client: client, table: table}
}

func toItem(md model.Metadata) map[string]*dynamodb.AttributeValue {
	item := map[string]*dynamodb.AttributeValue{
		"PK":       {S: aws.String(md.ScoreId)},
		"Title":    {S: aws.String(md.Title)},
		"Composer": {S: aws.String(md.Composer)},
	}
	if md.Year != 0 {
		item["Year"] = &dynamodb.AttributeValue{N: aws.String(strconv.FormatUint(uint64(md.Year), 10))}
	}
	return item
}

func fromItem(v map[string]*dynamodb.AttributeValue) model.Metadata {
	var s model.Metadata
	if pk, ok := v["PK"]; ok && pk.S != nil {
		s.ScoreId = *pk.S
	}
	if year, ok := v["Year"]; ok && year.N != nil {
		y, _ := strconv.ParseUint(*year.N, 10, 32)
		s.Year = uint(y)
	}
	if title, ok := v["Title"]; ok && title.S != nil {
		s.Title = *title.S
	}
	if composer, ok := v["Composer"]; ok && composer.S != nil {
		s.Composer = *composer.S
	}
	return s
}

func (d *DynamoStore) PutMetadata(ctx context.Context, md model.Metadata) error {
	if md.ScoreId == "" {
		return errors.Wrap(ErrMissingId, "cannot store metadata")
	}
	_, err := d.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      toItem(md),
	})
	return errors.Wrap(err, "Error from DynamoDB")
}

func (d *DynamoStore) GetMetadata(ctx context.Context, scoreId string) (model.Metadata, error) {
	res, err := d.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key:       map[string]*dynamodb.AttributeValue{"PK": {S: aws.String(scoreId)}},
	})
	if err != nil {
		return model.Metadata{}, errors.Wrap(err, "Error from DynamoDB")
	}
	if len(res.Item) == 0 {
		return model.Metadata{}, errors.Wrapf(ErrNotFound, "score %s", scoreId)
	}
	return fromItem(res.Item), nil
}

// GetMetadatas skips ids that have nothing stored.
func (d *DynamoStore) GetMetadatas(ctx context.Context, scoreIds []string) (map[string]model.Metadata, error) {
	res := make(map[string]model.Metadata)
	for start := 0; start < len(scoreIds); start += maxBatchKeys {
		end := start + maxBatchKeys
		if end > len(scoreIds) {
			end = len(scoreIds)
		}

		var keys []map[string]*dynamodb.AttributeValue
		for _, id := range scoreIds[start:end] {
			keys = append(keys, map[string]*dynamodb.AttributeValue{"PK": {S: aws.String(id)}})
		}
		input := &dynamodb.BatchGetItemInput{
			RequestItems: map[string]*dynamodb.KeysAndAttributes{
				d.table: {Keys: keys},
			},
		}
		dbres, err := d.client.BatchGetItemWithContext(ctx, input)
		if err != nil {
			return nil, errors.Wrap(err, "Error from DynamoDB")
		}
		for _, v := range dbres.Responses[d.table] {
			md := fromItem(v)
			res[md.ScoreId] = md
		}
	}
	return res, nil
}

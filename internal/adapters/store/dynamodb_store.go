package store

import (
	"context"
	"delivery-fee-service/internal/platform/obs"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDBAPI interface for mocking
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

type blobItem struct {
	Key       string `dynamodbav:"cache_key"`
	Payload   string `dynamodbav:"payload"`
	UpdatedAt int64  `dynamodbav:"updated_at"`
}

// DynamoStore keeps the blob as a single item keyed by cache_key.
type DynamoStore struct {
	client    DynamoDBAPI
	tableName string
	key       string
}

func NewDynamoStore(client DynamoDBAPI, tableName string, key string) *DynamoStore {
	if key == "" {
		key = DefaultKey
	}
	return &DynamoStore{client: client, tableName: tableName, key: key}
}

func (d *DynamoStore) Load(ctx context.Context) (_ []byte, err error) {
	defer obs.Time(ctx, "kv.dynamodb.Load")(&err)

	result, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.tableName),
		Key: map[string]types.AttributeValue{
			"cache_key": &types.AttributeValueMemberS{Value: d.key},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get cache blob: %w", err)
	}

	if result.Item == nil {
		return nil, nil
	}

	var item blobItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache blob: %w", err)
	}

	return []byte(item.Payload), nil
}

func (d *DynamoStore) Save(ctx context.Context, blob []byte) (err error) {
	defer obs.Time(ctx, "kv.dynamodb.Save")(&err)

	item, err := attributevalue.MarshalMap(blobItem{
		Key:       d.key,
		Payload:   string(blob),
		UpdatedAt: time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal cache blob: %w", err)
	}

	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put cache blob: %w", err)
	}

	return nil
}

package database

import (
	"context"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/resumepilot/resumepilot/internal/core"
	"github.com/resumepilot/resumepilot/internal/models"
)

// Single-table layout: PK is the resume id, SK selects the record kind.
// Profiles sit under a fixed SK; analyses and chat turns append under
// timestamped SKs so a range query returns them in chronological order.
const (
	skProfile        = "PROFILE"
	skAnalysisPrefix = "ANALYSIS#"
	skChatPrefix     = "CHAT#"

	userIndexName = "user-index"
)

var (
	_ core.ProfileStore     = (*DynamoClient)(nil)
	_ core.AnalysisStore    = (*DynamoClient)(nil)
	_ core.ChatHistoryStore = (*DynamoClient)(nil)
)

// DynamoClient implements the profile, analysis and chat stores on one
// DynamoDB table.
type DynamoClient struct {
	client *dynamodb.Client
	table  string
}

func NewDynamoClient(awsCfg aws.Config, table string) *DynamoClient {
	return &DynamoClient{client: dynamodb.NewFromConfig(awsCfg), table: table}
}

type profileItem struct {
	PK        string `dynamodbav:"PK"`
	SK        string `dynamodbav:"SK"`
	UserID    string `dynamodbav:"GSI1PK"`
	CreatedAt string `dynamodbav:"GSI1SK"`
	models.Profile
}

type analysisItem struct {
	PK string `dynamodbav:"PK"`
	SK string `dynamodbav:"SK"`
	models.AnalysisRecord
}

type chatItem struct {
	PK string `dynamodbav:"PK"`
	SK string `dynamodbav:"SK"`
	models.ChatMessage
}

// PutProfile writes the profile item. A plain PutItem, so writes are
// last-writer-wins; concurrent re-analysis of one resume id can race and
// the later write sticks.
func (c *DynamoClient) PutProfile(ctx context.Context, p *models.Profile) error {
	item, err := attributevalue.MarshalMap(profileItem{
		PK:        p.ResumeID,
		SK:        skProfile,
		UserID:    p.UserID,
		CreatedAt: p.CreatedAt.UTC().Format(models.TimestampLayout),
		Profile:   *p,
	})
	if err != nil {
		return &core.StorageError{Op: "marshal profile", Cause: err}
	}

	_, err = c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.table),
		Item:      item,
	})
	if err != nil {
		return &core.StorageError{Op: "put profile", Cause: err}
	}
	return nil
}

func (c *DynamoClient) GetProfile(ctx context.Context, resumeID string) (*models.Profile, error) {
	resp, err := c.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(c.table),
		Key: map[string]ddbtypes.AttributeValue{
			"PK": &ddbtypes.AttributeValueMemberS{Value: resumeID},
			"SK": &ddbtypes.AttributeValueMemberS{Value: skProfile},
		},
	})
	if err != nil {
		return nil, &core.StorageError{Op: "get profile", Cause: err}
	}
	if resp.Item == nil {
		return nil, nil
	}

	var item profileItem
	if err := attributevalue.UnmarshalMap(resp.Item, &item); err != nil {
		return nil, &core.StorageError{Op: "unmarshal profile", Cause: err}
	}
	return &item.Profile, nil
}

// ListProfilesByUser queries the user index. The index's native order is
// created_at ascending; any other requested order is applied client-side
// on the queried page.
func (c *DynamoClient) ListProfilesByUser(ctx context.Context, userID, sortBy, order string) ([]models.Profile, error) {
	resp, err := c.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(c.table),
		IndexName:              aws.String(userIndexName),
		KeyConditionExpression: aws.String("GSI1PK = :uid"),
		ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
			":uid": &ddbtypes.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, &core.StorageError{Op: "query profiles by user", Cause: err}
	}

	profiles := make([]models.Profile, 0, len(resp.Items))
	for _, raw := range resp.Items {
		var item profileItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			return nil, &core.StorageError{Op: "unmarshal profile", Cause: err}
		}
		profiles = append(profiles, item.Profile)
	}

	SortProfiles(profiles, sortBy, order)
	return profiles, nil
}

// SortProfiles orders profiles by the requested key and direction. The
// default (createdAt ascending) matches the index's native order and is a
// no-op rearrangement.
func SortProfiles(profiles []models.Profile, sortBy, order string) {
	desc := order == core.OrderDesc
	sort.SliceStable(profiles, func(i, j int) bool {
		var less bool
		switch sortBy {
		case core.SortByFitScore:
			less = fitScore(&profiles[i]) < fitScore(&profiles[j])
		default:
			less = profiles[i].CreatedAt.Before(profiles[j].CreatedAt)
		}
		if desc {
			return !less
		}
		return less
	})
}

func fitScore(p *models.Profile) float64 {
	if p.LastAnalysis == nil {
		return 0
	}
	return p.LastAnalysis.FitScore
}

func (c *DynamoClient) AppendAnalysis(ctx context.Context, rec *models.AnalysisRecord) error {
	item, err := attributevalue.MarshalMap(analysisItem{
		PK:             rec.ResumeID,
		SK:             skAnalysisPrefix + rec.Timestamp,
		AnalysisRecord: *rec,
	})
	if err != nil {
		return &core.StorageError{Op: "marshal analysis", Cause: err}
	}

	_, err = c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.table),
		Item:      item,
	})
	if err != nil {
		return &core.StorageError{Op: "append analysis", Cause: err}
	}
	return nil
}

func (c *DynamoClient) ListAnalyses(ctx context.Context, resumeID string) ([]models.AnalysisRecord, error) {
	resp, err := c.queryByPrefix(ctx, resumeID, skAnalysisPrefix)
	if err != nil {
		return nil, &core.StorageError{Op: "query analyses", Cause: err}
	}

	records := make([]models.AnalysisRecord, 0, len(resp.Items))
	for _, raw := range resp.Items {
		var item analysisItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			return nil, &core.StorageError{Op: "unmarshal analysis", Cause: err}
		}
		records = append(records, item.AnalysisRecord)
	}
	return records, nil
}

func (c *DynamoClient) AppendMessage(ctx context.Context, resumeID string, msg models.ChatMessage) error {
	item, err := attributevalue.MarshalMap(chatItem{
		PK:          resumeID,
		SK:          skChatPrefix + msg.Timestamp,
		ChatMessage: msg,
	})
	if err != nil {
		return &core.StorageError{Op: "marshal chat message", Cause: err}
	}

	_, err = c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.table),
		Item:      item,
	})
	if err != nil {
		return &core.StorageError{Op: "append chat message", Cause: err}
	}
	return nil
}

// GetHistory returns the resume's conversation in chronological order (the
// timestamped sort key's natural ascending order).
func (c *DynamoClient) GetHistory(ctx context.Context, resumeID string) ([]models.ChatMessage, error) {
	resp, err := c.queryByPrefix(ctx, resumeID, skChatPrefix)
	if err != nil {
		return nil, &core.StorageError{Op: "query chat history", Cause: err}
	}

	history := make([]models.ChatMessage, 0, len(resp.Items))
	for _, raw := range resp.Items {
		var item chatItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			return nil, &core.StorageError{Op: "unmarshal chat message", Cause: err}
		}
		history = append(history, item.ChatMessage)
	}
	return history, nil
}

func (c *DynamoClient) queryByPrefix(ctx context.Context, pk, prefix string) (*dynamodb.QueryOutput, error) {
	return c.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(c.table),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
			":pk":     &ddbtypes.AttributeValueMemberS{Value: pk},
			":prefix": &ddbtypes.AttributeValueMemberS{Value: prefix},
		},
		ScanIndexForward: aws.Bool(true),
	})
}

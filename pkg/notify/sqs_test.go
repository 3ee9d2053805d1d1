package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/samvad-hq/board-monitor/internal/domain"
)

type fakeSQSClient struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-123")}, nil
}

func TestSQSNotifierSendsReport(t *testing.T) {
	client := &fakeSQSClient{}
	notifier := &sqsNotifier{
		id:       "queue-1",
		typ:      TypeSQS,
		queueURL: "https://sqs.example.com/q",
		client:   client,
		log:      noopLogger{},
	}

	report := testReport(domain.BoardResult{Name: "b", AddedItems: []string{"fresh"}})
	if err := notifier.Notify(context.Background(), report); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.QueueUrl); got != "https://sqs.example.com/q" {
		t.Fatalf("QueueUrl = %s", got)
	}
	attr, ok := client.input.MessageAttributes["has_new"]
	if !ok || aws.ToString(attr.StringValue) != "true" {
		t.Fatalf("has_new attribute missing or wrong: %#v", attr)
	}
	if !strings.Contains(aws.ToString(client.input.MessageBody), `"name":"b"`) {
		t.Fatalf("body missing board result: %s", aws.ToString(client.input.MessageBody))
	}
}

func TestSQSNotifierSendError(t *testing.T) {
	notifier := &sqsNotifier{
		id:       "queue-1",
		typ:      TypeSQS,
		queueURL: "https://sqs.example.com/q",
		client:   &fakeSQSClient{err: errors.New("throttled")},
		log:      noopLogger{},
	}

	err := notifier.Notify(context.Background(), testReport())
	if err == nil || !strings.Contains(err.Error(), "throttled") {
		t.Fatalf("expected send error, got %v", err)
	}
}

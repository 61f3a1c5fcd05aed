package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

type fakeSNSClient struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNSClient) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-123")}, nil
}

func TestAWSSNSSenderSendSuccess(t *testing.T) {
	client := &fakeSNSClient{}
	sender := &awsSNSSender{
		topicARN: "arn:aws:sns:::topic",
		client:   client,
		log:      noopLogger{},
	}

	err := sender.Send(context.Background(), NewPageGenerated("revenue", "d", "revenue", "", nil))
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.TopicArn); got != "arn:aws:sns:::topic" {
		t.Fatalf("TopicArn = %s", got)
	}
	attr, ok := client.input.MessageAttributes["event_type"]
	if !ok || aws.ToString(attr.StringValue) != EventPageGenerated {
		t.Fatalf("event_type attribute missing or wrong: %#v", attr)
	}
	if !strings.Contains(aws.ToString(client.input.Message), `"page_name":"revenue"`) {
		t.Fatalf("Message missing page_name: %s", aws.ToString(client.input.Message))
	}
}

func TestAWSSNSSenderSendError(t *testing.T) {
	client := &fakeSNSClient{err: errors.New("boom")}
	sender := &awsSNSSender{
		topicARN: "arn:aws:sns:::topic",
		client:   client,
		log:      noopLogger{},
	}

	if err := sender.Send(context.Background(), NewPageGenerated("p", "d", "films", "", nil)); err == nil {
		t.Fatalf("expected error from Send")
	}
}

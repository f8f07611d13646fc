package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Xushengqwer/go-common/core"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Xushengqwer/blog_service/config"
	"github.com/Xushengqwer/blog_service/models/events"
)

// KafkaProducer Kafka 消息生产者
type KafkaProducer struct {
	writer *kafka.Writer
	logger *core.ZapLogger
	topics config.Topics
}

// NewKafkaProducer 创建一个新的 Kafka 生产者实例
func NewKafkaProducer(config config.KafkaConfig, logger *core.ZapLogger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(config.Brokers...),
		Balancer: &kafka.LeastBytes{},
	}
	return &KafkaProducer{
		writer: writer,
		logger: logger,
		topics: config.Topics,
	}
}

// SendEvent 发送事件到指定 Kafka 主题
// 生产者未配置（nil）时直接返回，调用方无需区分部署形态。
func (p *KafkaProducer) SendEvent(ctx context.Context, topic string, event interface{}) error {
	if p == nil || p.writer == nil {
		return nil
	}
	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal event", zap.Error(err), zap.String("topic", topic))
		return err
	}

	p.logger.Debug("Sending Kafka message",
		zap.String("topic", topic),
		zap.ByteString("payload", eventBytes))

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Value: eventBytes,
	})

	if err != nil {
		p.logger.Error("Failed to write Kafka message", zap.Error(err), zap.String("topic", topic))
	} else {
		p.logger.Info("Successfully sent Kafka message", zap.String("topic", topic))
	}
	return err
}

// SendPostCreatedEvent 发送文章创建事件到 Kafka
// - 意图: 通知下游服务（搜索索引、订阅推送等）有新文章发布
// - 输入: ctx context.Context 上下文, postData events.PostData 文章核心数据
// - 输出: error 错误信息
func (p *KafkaProducer) SendPostCreatedEvent(ctx context.Context, postData events.PostData) error {
	// nil 生产者（未配置 broker）时直接跳过，不能在读 p.topics 前解引用
	if p == nil {
		return nil
	}
	event := events.PostCreatedEvent{
		EventID:   uuid.New().String(),
		Timestamp: time.Now(),
		Post:      postData,
	}
	return p.SendEvent(ctx, p.topics.PostCreated, event)
}

// SendPostUpdatedEvent 发送文章更新事件到 Kafka
func (p *KafkaProducer) SendPostUpdatedEvent(ctx context.Context, postData events.PostData) error {
	if p == nil {
		return nil
	}
	event := events.PostUpdatedEvent{
		EventID:   uuid.New().String(),
		Timestamp: time.Now(),
		Post:      postData,
	}
	return p.SendEvent(ctx, p.topics.PostUpdated, event)
}

// SendPostDeletedEvent 发送文章删除事件到 Kafka
// - 意图: 通知下游服务清理被删除文章的派生数据
// - 输入: ctx context.Context 上下文, postID uint64 文章ID
// - 输出: error 错误信息
func (p *KafkaProducer) SendPostDeletedEvent(ctx context.Context, postID uint64) error {
	if p == nil {
		return nil
	}
	event := events.PostDeletedEvent{
		EventID:   uuid.New().String(),
		Timestamp: time.Now(),
		PostID:    postID,
	}
	return p.SendEvent(ctx, p.topics.PostDeleted, event)
}

// Close 关闭底层的 Kafka writer。
func (p *KafkaProducer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

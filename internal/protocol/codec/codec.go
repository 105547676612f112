package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/palemoky/pass-four/internal/protocol"
)

// Codec 线路编解码器
type Codec interface {
	Name() string
	Encode(m *protocol.Message) ([]byte, error)
	// Decode 返回的消息来自对象池，处理完成后调用 PutMessage 归还
	Decode(data []byte) (*protocol.Message, error)
	// Binary 是否使用 websocket 二进制帧
	Binary() bool
}

// 编解码器名称
const (
	NameJSON  = "json"
	NameProto = "proto"
)

// ErrUnknownCodec 未知编解码器
var ErrUnknownCodec = errors.New("unknown codec")

// ByName 根据名称返回编解码器
func ByName(name string) (Codec, error) {
	switch name {
	case "", NameJSON:
		return JSON{}, nil
	case NameProto:
		return Proto{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
}

// JSON 文本帧编解码器
type JSON struct{}

func (JSON) Name() string { return NameJSON }
func (JSON) Binary() bool { return false }

func (JSON) Encode(m *protocol.Message) ([]byte, error) {
	buf := GetBuffer()
	defer PutBuffer(buf)

	if err := json.NewEncoder(buf).Encode(m); err != nil {
		return nil, err
	}
	// Encoder 末尾带换行
	out := make([]byte, buf.Len()-1)
	copy(out, buf.Bytes())
	return out, nil
}

func (JSON) Decode(data []byte) (*protocol.Message, error) {
	msg := GetMessage()
	if err := json.Unmarshal(data, msg); err != nil {
		PutMessage(msg)
		return nil, err
	}
	return msg, nil
}

// Proto 二进制帧编解码器，使用 protobuf wire 格式封装信封:
//
//	1: type    (string)
//	2: id      (string)
//	3: payload (bytes, JSON)
type Proto struct{}

const (
	fieldType    protowire.Number = 1
	fieldID      protowire.Number = 2
	fieldPayload protowire.Number = 3
)

func (Proto) Name() string { return NameProto }
func (Proto) Binary() bool { return true }

func (Proto) Encode(m *protocol.Message) ([]byte, error) {
	b := make([]byte, 0, len(m.Type)+len(m.ID)+len(m.Payload)+12)
	b = protowire.AppendTag(b, fieldType, protowire.BytesType)
	b = protowire.AppendString(b, string(m.Type))
	if m.ID != "" {
		b = protowire.AppendTag(b, fieldID, protowire.BytesType)
		b = protowire.AppendString(b, m.ID)
	}
	if len(m.Payload) > 0 {
		b = protowire.AppendTag(b, fieldPayload, protowire.BytesType)
		b = protowire.AppendBytes(b, m.Payload)
	}
	return b, nil
}

func (Proto) Decode(data []byte) (*protocol.Message, error) {
	msg := GetMessage()
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			PutMessage(msg)
			return nil, protowire.ParseError(n)
		}
		data = data[n:]

		if typ != protowire.BytesType {
			n = protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				PutMessage(msg)
				return nil, protowire.ParseError(n)
			}
			data = data[n:]
			continue
		}

		v, n := protowire.ConsumeBytes(data)
		if n < 0 {
			PutMessage(msg)
			return nil, protowire.ParseError(n)
		}
		data = data[n:]

		switch num {
		case fieldType:
			msg.Type = protocol.MessageType(v)
		case fieldID:
			msg.ID = string(v)
		case fieldPayload:
			// 复制 payload 避免引用底层缓冲
			msg.Payload = append([]byte(nil), v...)
		}
	}
	if msg.Type == "" {
		PutMessage(msg)
		return nil, errors.New("missing message type")
	}
	return msg, nil
}

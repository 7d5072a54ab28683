package handler

import (
	"encoding/json"
	"fmt"
)

// jsonCodec はprotobufを使わないGoの構造体をそのままJSONで送受信するConnectのコーデックです
// 名前を "json" にすることで、Connect標準のprotojsonコーデックを置き換えます
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	// 空のボディはゼロ値のリクエストとして扱う
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// 選択されたバリエーション（例: {"size":"M","color":"Red"}）
// 空とnilは「指定なし」として同じ扱い。DBにはキー順固定のJSONで保存する。
type Variation map[string]string

func (v Variation) Value() (driver.Value, error) {
	if len(v) == 0 {
		return nil, nil
	}
	// encoding/jsonはmapのキーをソートして出力する
	b, err := json.Marshal(map[string]string(v))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (v *Variation) Scan(value interface{}) error {
	raw, ok, err := scanJSONText("variation", value)
	if err != nil || !ok {
		*v = nil
		return err
	}
	var m map[string]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("variation: %w", err)
	}
	if len(m) == 0 {
		*v = nil
		return nil
	}
	*v = m
	return nil
}

// 比較用のキー。指定なしは空文字。
func (v Variation) Key() string {
	val, err := v.Value()
	if err != nil || val == nil {
		return ""
	}
	return val.(string)
}

// 同じ選択か（指定なし同士も一致）
func (v Variation) Equal(other Variation) bool {
	return v.Key() == other.Key()
}

// 商品が持つ選択肢（例: {"sizes":["S","M"],"colors":["Black"]}）
type VariationOptions map[string][]string

func (o VariationOptions) Value() (driver.Value, error) {
	if len(o) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(map[string][]string(o))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (o *VariationOptions) Scan(value interface{}) error {
	raw, ok, err := scanJSONText("variations", value)
	if err != nil || !ok {
		*o = nil
		return err
	}
	var m map[string][]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("variations: %w", err)
	}
	*o = m
	return nil
}

// 画像URLなどの順序付きリスト
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	raw, ok, err := scanJSONText("string list", value)
	if err != nil || !ok {
		*l = nil
		return err
	}
	var s []string
	if err := json.Unmarshal(raw, &s); err != nil {
		return fmt.Errorf("string list: %w", err)
	}
	*l = s
	return nil
}

func scanJSONText(name string, value interface{}) ([]byte, bool, error) {
	switch t := value.(type) {
	case nil:
		return nil, false, nil
	case []byte:
		if len(t) == 0 {
			return nil, false, nil
		}
		return t, true, nil
	case string:
		if t == "" {
			return nil, false, nil
		}
		return []byte(t), true, nil
	default:
		return nil, false, fmt.Errorf("%s: unsupported scan type %T", name, value)
	}
}

package utils

import "encoding/json"

// EncodeTags -> simpan set tag sebagai JSON array di kolom text
func EncodeTags(tags []string) string {
	data, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// DecodeTags -> kebalikan EncodeTags; string kosong = tanpa tag
func DecodeTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil
	}
	return tags
}

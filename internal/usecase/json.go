package usecase

import (
	"encoding/json"
	"strconv"
)

// 監査ログのbefore/after用の小物

func quoteJSON(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(b)
}

func int64JSON(v *int64) string {
	if v == nil {
		return "null"
	}
	return strconv.FormatInt(*v, 10)
}

func boolJSON(v bool) string {
	return strconv.FormatBool(v)
}

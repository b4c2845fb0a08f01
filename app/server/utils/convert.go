package utils

import "strconv"

func P[T any](v T) *T {
	return &v
}

// ParseID 解析路径中的数字 ID
func ParseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"relapse_predict/logger"
	"relapse_predict/models"
)

// ErrBodyTooLarge 请求体超过上限
var ErrBodyTooLarge = errors.New("request body too large")

// WriteFormattedJSON 格式化JSON输出，使其更易读；先编码再写状态码，编码失败时返回500
func WriteFormattedJSON(w http.ResponseWriter, status int, data interface{}) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "    ") // 使用4个空格缩进
	if err := encoder.Encode(data); err != nil {
		logger.Error("编码响应失败", "error", err)
		buf.Reset()
		status = http.StatusInternalServerError
		_ = encoder.Encode(models.NewErrorResponse(err.Error()))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Error("写入响应失败", "error", err)
	}
}

// WriteSuccessResponse 写入200响应
func WriteSuccessResponse(w http.ResponseWriter, data interface{}) {
	WriteFormattedJSON(w, http.StatusOK, data)
}

// WriteErrorResponse 写入错误响应
func WriteErrorResponse(w http.ResponseWriter, status int, message string) {
	WriteFormattedJSON(w, status, models.NewErrorResponse(message))
}

// ReadBody 读取请求体，超过limit字节时返回ErrBodyTooLarge
func ReadBody(r *http.Request, limit int64) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()

	body, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, ErrBodyTooLarge
	}
	return body, nil
}

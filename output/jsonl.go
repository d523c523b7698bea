package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/CodMac/go-treesitter-name-extractor/model"
)

type JSONLWriter struct {
	encoder *json.Encoder
}

func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{
		encoder: json.NewEncoder(w),
	}
}

func (w *JSONLWriter) Write(v interface{}) error {
	return w.encoder.Encode(v)
}

// WriteAll 每个文件的提取结果输出为一行 JSON
func (w *JSONLWriter) WriteAll(files []*model.FileData) (int, error) {
	count := 0
	for _, fd := range files {
		if err := w.Write(fd); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// NameRecord 是按名称展开的输出行
type NameRecord struct {
	File         string        `json:"File"`
	JavaFileName string        `json:"JavaFileName"`
	Name         string        `json:"Name"`
	Tokens       []model.Token `json:"Tokens"`
	Anomaly      bool          `json:"Anomaly,omitempty"`
}

// WriteNames 每个标识符名称输出为一行，便于按名称做后续统计
func (w *JSONLWriter) WriteNames(files []*model.FileData) (int, error) {
	count := 0
	for _, fd := range files {
		for _, tn := range fd.TokenisedNames() {
			rec := NameRecord{
				File:         fd.SystemFileName(),
				JavaFileName: fd.JavaFileName(),
				Name:         tn.Name,
				Tokens:       tn.Tokens,
				Anomaly:      tn.Anomaly,
			}
			if err := w.Write(rec); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

// ExportFileData 将提取结果写入 path
func ExportFileData(path string, files []*model.FileData) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}

	var count int
	err = WriteAndClose(f, func(w io.Writer) error {
		var werr error
		count, werr = NewJSONLWriter(w).WriteAll(files)
		return werr
	})
	return count, err
}

// WriteAndClose 调用 write 后关闭 wc。写入成功时返回 Close 的错误，
// 否则返回写入错误。
func WriteAndClose(wc io.WriteCloser, write func(w io.Writer) error) error {
	err := write(wc)
	if cerr := wc.Close(); err == nil {
		err = cerr
	}
	return err
}

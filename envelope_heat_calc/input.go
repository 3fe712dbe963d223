package envelope_heat_calc

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// 建物定義の形式
type InputFormat string

const (
	FormatJSON InputFormat = "json"
	FormatYAML InputFormat = "yaml"
)

// ファイル名の拡張子から形式を判定する（不明な場合は JSON）
func FormatFromPath(path string) InputFormat {
	// URL のクエリは除く
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

/*
建物定義を読み込む。

Args:
	path: ファイルのパス、または http(s) の URL
Returns:
	建物定義
*/
func LoadBuilding(path string) (*Building, error) {
	log.Infof("Load building definition from `%s`", path)

	var data []byte
	var err error
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		data, err = fetch(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}

	return ParseBuilding(data, FormatFromPath(path))
}

func fetch(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// 建物定義を解釈する。
func ParseBuilding(data []byte, format InputFormat) (*Building, error) {
	var b Building
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &b)
	case FormatJSON:
		err = json.Unmarshal(data, &b)
	default:
		return nil, fmt.Errorf("%w: format %q", ErrInvalidInput, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return &b, nil
}

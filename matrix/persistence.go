package matrix

import (
	"bytes"
	"encoding/gob"
	"io"
	"os"

	"github.com/YuminosukeSato/ctm/pkg/errors"
	"github.com/YuminosukeSato/ctm/pkg/log"
)

// wireMatrix は gob でやり取りする行列の表現
type wireMatrix[T Number] struct {
	Rows, Cols int
	Elements   []T // 列優先
}

// GobEncode は形状と列優先の要素をエンコードする
func (m *Matrix[T]) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	w := wireMatrix[T]{Rows: m.rows, Cols: m.cols, Elements: m.elements}
	if err := gob.NewEncoder(&buf).Encode(w); err != nil {
		return nil, errors.Wrap(err, "failed to encode matrix")
	}
	return buf.Bytes(), nil
}

// GobDecode はmのストレージをデコードした内容で置き換える。
// mから作られたViewは失効する。
func (m *Matrix[T]) GobDecode(data []byte) error {
	var w wireMatrix[T]
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return errors.Wrap(err, "failed to decode matrix")
	}
	if err := validateShape(w.Rows, w.Cols); err != nil {
		return err
	}
	if len(w.Elements) != w.Rows*w.Cols {
		return errors.NewValidationError("elements", "length does not match rows*cols", len(w.Elements))
	}
	m.install(w.Elements, w.Rows, w.Cols)
	return nil
}

// Encode は行列をwに書き出す
func Encode[T Number](m *Matrix[T], w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(orEmpty(m)); err != nil {
		return errors.Wrap(err, "failed to encode matrix")
	}
	return nil
}

// Decode はrから行列を読み込む
func Decode[T Number](r io.Reader) (*Matrix[T], error) {
	m := &Matrix[T]{}
	if err := gob.NewDecoder(r).Decode(m); err != nil {
		return nil, errors.Wrap(err, "failed to decode matrix")
	}
	return m, nil
}

// Save は行列をファイルに保存する
//
// 使用例:
//
//	err := matrix.Save(a, "a.gob")
func Save[T Number](m *Matrix[T], filename string) error {
	m = orEmpty(m)
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", filename)
	}
	defer file.Close()

	if err := Encode(m, file); err != nil {
		return err
	}
	logger().Debug("matrix saved", log.RowsKey, m.Rows(), log.ColsKey, m.Cols(), "path", filename)
	return nil
}

// Load はファイルから行列を読み込む
//
// 使用例:
//
//	a, err := matrix.Load[float64]("a.gob")
func Load[T Number](filename string) (*Matrix[T], error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", filename)
	}
	defer file.Close()

	return Decode[T](file)
}

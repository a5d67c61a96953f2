package memory

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"nupy/internal/value"
)

// SaveImage serializes r's cells to w as a simple binary memory image:
// a uint32 cell count, then per cell a length-prefixed name, a tag
// byte, and a tag-dependent payload. Grounded on
// db47h-ngaro's vm/mem.go Save/Load, which performs
// the equivalent round-trip for a Forth VM's flat cell array; nupy has
// no such feature in original_source (the C source only ever dumps
// memory to the console via ram_print), so this generalizes that
// console dump into a re-loadable file format in the pack's idiom.
func SaveImage(w io.Writer, r *RAM) error {
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, uint32(r.Count())); err != nil {
		return errors.Wrap(err, "write cell count failed")
	}
	for i := 0; i < r.Count(); i++ {
		name, v, _ := r.Cell(i)
		if err := writeString(bw, name); err != nil {
			return errors.Wrapf(err, "write name at address %d failed", i)
		}
		if err := bw.WriteByte(byte(v.Tag)); err != nil {
			return errors.Wrapf(err, "write tag at address %d failed", i)
		}
		if err := writePayload(bw, v); err != nil {
			return errors.Wrapf(err, "write payload at address %d failed", i)
		}
	}
	return errors.Wrap(bw.Flush(), "flush image failed")
}

// LoadImage reconstructs a RAM from an image written by SaveImage.
func LoadImage(r io.Reader) (*RAM, error) {
	br := bufio.NewReader(r)
	var count uint32
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return nil, errors.Wrap(err, "read cell count failed")
	}
	ram := New()
	for i := uint32(0); i < count; i++ {
		name, err := readString(br)
		if err != nil {
			return nil, errors.Wrapf(err, "read name at address %d failed", i)
		}
		tagByte, err := br.ReadByte()
		if err != nil {
			return nil, errors.Wrapf(err, "read tag at address %d failed", i)
		}
		v, err := readPayload(br, value.Type(tagByte))
		if err != nil {
			return nil, errors.Wrapf(err, "read payload at address %d failed", i)
		}
		ram.WriteByName(name, v)
	}
	return ram, nil
}

func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func writePayload(w io.Writer, v value.Value) error {
	switch v.Tag {
	case value.Int, value.Ptr:
		return binary.Write(w, binary.LittleEndian, v.I)
	case value.Real:
		return binary.Write(w, binary.LittleEndian, v.D)
	case value.Str:
		return writeString(w, v.S)
	case value.Bool:
		b := byte(0)
		if v.Bool {
			b = 1
		}
		return binary.Write(w, binary.LittleEndian, b)
	default:
		return nil
	}
}

func readPayload(r *bufio.Reader, tag value.Type) (value.Value, error) {
	switch tag {
	case value.Int:
		var i int64
		err := binary.Read(r, binary.LittleEndian, &i)
		return value.NewInt(i), err
	case value.Ptr:
		var i int64
		err := binary.Read(r, binary.LittleEndian, &i)
		return value.NewPtr(i), err
	case value.Real:
		var d float64
		err := binary.Read(r, binary.LittleEndian, &d)
		return value.NewReal(d), err
	case value.Str:
		s, err := readString(r)
		return value.NewStr(s), err
	case value.Bool:
		b, err := r.ReadByte()
		return value.NewBool(b == 1), err
	default:
		return value.NewNone(), nil
	}
}

package sketchid

import (
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"
	"os"

	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZ
	DataTypeBZip2
)

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeZ:     {0x1f, 0x9d},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
}

// DetectDataType attempts to detect the data type of a stream by checking
// against a set of known data types. A stream too short to carry any known
// signature, including an empty one, is reported as uncompressed rather than
// as an error. Byte code signatures from
// https://stackoverflow.com/a/19127748/199475
func DetectDataType(r io.Reader) (DataType, error) {
	buff := make([]byte, 6)
	n, err := io.ReadFull(r, buff)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return DataTypeInvalid, err
	}
	buff = buff[:n]

	// Match known signatures
Outer:
	for dt, sig := range byteCodeSigs {
		if len(sig) > len(buff) {
			continue
		}
		for position := range sig {
			if buff[position] != sig[position] {
				continue Outer
			}
		}
		return dt, nil
	}

	return DataTypeNoCompression, nil
}

// MaybeDecompressReadCloserFromFile consumes an open file and yields a reader
// over its uncompressed contents, based on the signature at the start of the
// file. Files without a recognized signature are assumed to be uncompressed.
// For zip archives, the reader is positioned at the first archived file.
func MaybeDecompressReadCloserFromFile(f *os.File) (io.ReadCloser, error) {
	dt, err := DetectDataType(f)
	if err != nil {
		return nil, err
	}

	// Reset your original reader, since detection consumed its leading bytes
	if _, err := f.Seek(0, 0); err != nil {
		return nil, err
	}

	switch dt {
	case DataTypeGzip:
		return gzip.NewReader(f)
	case DataTypeZip:
		zr := zipstream.NewReader(f)
		if _, err := zr.Next(); err != nil {
			return nil, err
		}
		return &readCloserFaker{zr}, nil
	case DataTypeBZip2:
		return &readCloserFaker{bzip2.NewReader(f)}, nil
	case DataTypeXZ:
		reader, err := xz.NewReader(f, 0)
		if err != nil {
			return nil, err
		}
		return &readCloserFaker{reader}, nil
	case DataTypeZ:
		return zlib.NewReader(f)
	}

	// No data type detected. For now, we assume this is uncompressed.
	return f, nil
}

// OpenMaybeCompressed opens the file at path and transparently decompresses
// its contents. Closing the returned ReadCloser also closes the underlying
// file.
func OpenMaybeCompressed(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	r, err := MaybeDecompressReadCloserFromFile(f)
	if err != nil {
		f.Close()
		return nil, pfx.Err(err)
	}

	if plain, ok := r.(*os.File); ok {
		return plain, nil
	}

	return &decompressedFile{ReadCloser: r, file: f}, nil
}

// decompressedFile pairs a decompressing reader with the file beneath it so
// that one Close tears down both.
type decompressedFile struct {
	io.ReadCloser
	file *os.File
}

func (d *decompressedFile) Close() error {
	err := d.ReadCloser.Close()
	if ferr := d.file.Close(); err == nil {
		err = ferr
	}
	return err
}

// readCloserFaker "upgrades" readers that don't need to be closed
type readCloserFaker struct {
	io.Reader
}

func (c *readCloserFaker) Close() error {
	return nil
}

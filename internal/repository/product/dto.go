package product

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/kailas-cloud/voicecart/internal/domain"
	domprod "github.com/kailas-cloud/voicecart/internal/domain/product"
)

// Hash field names for a stored product.
const (
	hashTitle       = domprod.FieldTitle
	hashDescription = domprod.FieldDescription
	hashCategory    = domprod.FieldCategory
	hashPrice       = "price"
	hashEmoji       = "emoji"
	hashProcess     = "process"
	hashEmbedding   = "embedding"
)

var (
	productPrefix = domain.KeyPrefix + "product:"
	idSetKey      = domain.KeyPrefix + "products:ids"
	indexName     = domain.KeyPrefix + "products:idx"
)

// returnFields are fetched from search hits. The embedding stays in Redis.
var returnFields = []string{hashTitle, hashDescription, hashCategory, hashPrice, hashEmoji, hashProcess}

func productKey(id string) string { return productPrefix + id }

func extractID(key string) string { return strings.TrimPrefix(key, productPrefix) }

// buildHashFields converts a domain Product into a flat map[string]string for HSET.
// Products without an embedding get no embedding field so the vector index skips them.
func buildHashFields(p *domprod.Product) map[string]string {
	m := map[string]string{
		hashTitle:       p.Title(),
		hashDescription: p.Description(),
		hashCategory:    p.Category(),
		hashPrice:       strconv.FormatFloat(p.Price(), 'f', -1, 64),
		hashEmoji:       p.Emoji(),
		hashProcess:     p.Process(),
	}
	if p.HasEmbedding() {
		m[hashEmbedding] = vectorToBytes(p.Embedding())
	}
	return m
}

// parseHashFields converts a flat hash map back into a domain Product.
func parseHashFields(id string, m map[string]string) domprod.Product {
	price, _ := strconv.ParseFloat(m[hashPrice], 64)
	var vec []float32
	if raw, ok := m[hashEmbedding]; ok {
		vec = bytesToVector(raw)
	}
	return domprod.Reconstruct(
		id, m[hashTitle], m[hashDescription], m[hashCategory], price, m[hashEmoji], m[hashProcess], vec,
	)
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// bytesToVector deserializes a binary string back to []float32.
func bytesToVector(s string) []float32 {
	if len(s) == 0 || len(s)%4 != 0 {
		return nil
	}
	b := []byte(s)
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}

package utils

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func pngBytes(t *testing.T, w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 100, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodeImage(t *testing.T) {
	valid := pngBytes(t, 40, 30)
	tests := []struct {
		name    string
		data    []byte
		max     int64
		wantErr error
	}{
		{"png", valid, 1 << 20, nil},
		{"empty", nil, 1 << 20, ErrEmptyUpload},
		{"too large", valid, 10, ErrTooLarge},
		{"garbage", []byte("definitely not an image"), 1 << 20, ErrNotAnImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, raw, err := DecodeImage(bytes.NewReader(tt.data), tt.max)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("DecodeImage() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 || !bytes.Equal(raw, tt.data) {
				t.Errorf("DecodeImage() = %v, %d bytes", img.Bounds(), len(raw))
			}
		})
	}
}

func TestCreateThumb(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 200))
	var buf bytes.Buffer
	res, err := CreateThumb(100, img, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if res.NewX != 100 || res.NewY != 50 || res.OldX != 400 || res.OldY != 200 {
		t.Errorf("CreateThumb() = %+v", res)
	}
	if res.ThumbSize != int64(buf.Len()) || buf.Len() == 0 {
		t.Errorf("ThumbSize = %d, written %d", res.ThumbSize, buf.Len())
	}
	decoded, format, err := image.Decode(&buf)
	if err != nil || format != "jpeg" || decoded.Bounds().Dx() != 100 {
		t.Errorf("thumb decode = %v, %s, %v", decoded.Bounds(), format, err)
	}
}

func TestStringConversions(t *testing.T) {
	for in, want := range map[string]uint64{"12": 12, "": 0, "-1": 0, "x": 0} {
		if got := StringToUInt64(in); got != want {
			t.Errorf("StringToUInt64(%q) = %d, want %d", in, got, want)
		}
	}
	if i, ok := StringToInt("3"); !ok || i != 3 {
		t.Errorf("StringToInt(3) = %d, %v", i, ok)
	}
	if _, ok := StringToInt("three"); ok {
		t.Error("StringToInt(three) should fail")
	}
}

func TestRequestLogger(t *testing.T) {
	router := gin.New()
	router.Use(RequestLogger)
	var seen string
	router.GET("/ping", func(c *gin.Context) {
		seen = RequestID(c)
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if seen == "" || w.Header().Get(RequestIDHeader) != seen {
		t.Errorf("request id = %q, header %q", seen, w.Header().Get(RequestIDHeader))
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc")
	router.ServeHTTP(w, req)
	if seen != "abc" {
		t.Errorf("incoming request id not kept: %q", seen)
	}
}

func TestCacheRouter(t *testing.T) {
	tests := []struct {
		cacheTime int
		want      string
	}{
		{CacheNoCache, "no-store"},
		{60, "private, max-age=60"},
		{CacheCustom, ""},
	}
	for _, tt := range tests {
		router := gin.New()
		router.Use((&CacheRouter{CacheTime: tt.cacheTime}).Handler())
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if got := w.Header().Get("cache-control"); !strings.EqualFold(got, tt.want) {
			t.Errorf("CacheTime %d: cache-control = %q, want %q", tt.cacheTime, got, tt.want)
		}
	}
}

package handlers

import (
	"attendance/db"
	"attendance/faces"
	"attendance/models"
	"attendance/push"
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeRecognition struct {
	match faces.Match
	ok    bool
	err   error
	calls int
}

func (f *fakeRecognition) Recognize(ctx context.Context, img image.Image) (faces.Match, bool, error) {
	f.calls++
	return f.match, f.ok, f.err
}

type recordingSink struct {
	events []push.Event
}

func (s *recordingSink) Send(ev *push.Event) error {
	s.events = append(s.events, *ev)
	return nil
}

type testEnv struct {
	t          *testing.T
	router     *gin.Engine
	services   *Services
	recognizer *fakeRecognition
	sink       *recordingSink
	token      string
	course     models.Course
	alice      models.Student
	bob        models.Student
}

// newTestEnv starts an API on a fresh database with one lecturer owning one course
// where Alice (face id "alice") and Bob are enrolled
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if err := db.InitMemory(); err != nil {
		t.Fatal(err)
	}
	if err := models.Init(); err != nil {
		t.Fatal(err)
	}
	env := &testEnv{
		t:          t,
		recognizer: &fakeRecognition{},
		sink:       &recordingSink{},
	}
	events := &push.Dispatcher{}
	events.Add(env.sink)
	hub := push.NewHub()
	events.Add(hub)
	env.services = &Services{Recognition: env.recognizer, Events: events, Hub: hub}

	env.router = gin.New()
	store := gormsessions.NewStore(db.Instance, false, []byte("test-session-key"))
	env.router.Use(sessions.Sessions("token", store))
	Register(env.router, env.services)

	env.token = env.login("rina@kampus.ac.id", "secret123", true)
	env.course = models.Course{}
	env.doJSON(http.MethodPost, "/courses", env.token, CourseRequest{Name: "Computer Vision", Code: "IF4073"}, http.StatusCreated, &env.course)
	faceID := "alice"
	env.doJSON(http.MethodPost, "/students", env.token, StudentRequest{Name: "Alice", NIM: "2021001", FaceID: &faceID}, http.StatusCreated, &env.alice)
	env.doJSON(http.MethodPost, "/students", env.token, StudentRequest{Name: "Bob", NIM: "2021002"}, http.StatusCreated, &env.bob)
	for _, s := range []models.Student{env.alice, env.bob} {
		env.doJSON(http.MethodPost, "/enrollments", env.token, EnrollmentRequest{CourseID: env.course.ID, StudentID: s.ID}, http.StatusCreated, nil)
	}
	return env
}

func (env *testEnv) serve(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// doJSON sends body as JSON, checks the status code and decodes the answer into out
func (env *testEnv) doJSON(method, path, token string, body interface{}, wantStatus int, out interface{}) *httptest.ResponseRecorder {
	env.t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			env.t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := env.serve(req, token)
	if w.Code != wantStatus {
		env.t.Fatalf("%s %s: status = %d, want %d, body %s", method, path, w.Code, wantStatus, w.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			env.t.Fatalf("%s %s: decode %s: %v", method, path, w.Body.String(), err)
		}
	}
	return w
}

func (env *testEnv) login(email, password string, register bool) string {
	env.t.Helper()
	if register {
		env.doJSON(http.MethodPost, "/auth/register", "", LecturerRegisterRequest{Name: "Lecturer", Email: email, Password: password}, http.StatusCreated, nil)
	}
	token := TokenResponse{}
	env.doJSON(http.MethodPost, "/auth/login", "", LecturerLoginRequest{Email: email, Password: password}, http.StatusOK, &token)
	if token.AccessToken == "" || token.TokenType != "bearer" {
		env.t.Fatalf("login answer = %+v", token)
	}
	return token.AccessToken
}

func frame(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 4), uint8(y * 5), 90, 255})
		}
	}
	buf := bytes.Buffer{}
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func multipartFile(t *testing.T, field string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if field != "" {
		part, err := writer.CreateFormFile(field, "frame.png")
		if err != nil {
			t.Fatal(err)
		}
		if _, err = part.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
	return body, writer.FormDataContentType()
}

func (env *testEnv) markFace(path string, field string, data []byte) *httptest.ResponseRecorder {
	body, contentType := multipartFile(env.t, field, data)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	return env.serve(req, env.token)
}

func (env *testEnv) doJSONBody(w *httptest.ResponseRecorder, out interface{}) {
	env.t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		env.t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
}

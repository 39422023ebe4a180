package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"autoslidex-api/internal/application/outline"
	"autoslidex-api/internal/application/pptx"
	"autoslidex-api/internal/application/presentation"
	"autoslidex-api/internal/domain/entity"
	"autoslidex-api/internal/infrastructure/persistence/memory"
	"autoslidex-api/internal/infrastructure/storage"
)

// scriptedGenerator 按提示词类型返回固定的合法响应
type scriptedGenerator struct {
	content int
}

var testContents = [][3]string{
	{
		"Write-ahead logs persist mutations before acknowledging client requests for durability",
		"Checkpointing truncates replayable history so recovery time stays bounded",
		"Group commit batches fsync calls to amortize disk latency across transactions",
	},
	{
		"Leaderless replication accepts writes at any replica using quorum arithmetic",
		"Read repair reconciles divergent replicas opportunistically during query execution",
		"Hinted handoff parks writes for unreachable nodes until they rejoin",
	},
	{
		"Snapshot isolation gives each transaction a consistent view without read locks",
		"Write skew anomalies slip past snapshot isolation and need explicit locking",
		"Serializable levels detect dangerous structures among concurrent transaction pairs",
	},
}

func (g *scriptedGenerator) Generate(_ context.Context, prompt string) (string, error) {
	switch {
	case strings.Contains(prompt, "presentation title"):
		return `"Storage Engines Deep Dive"`, nil
	case strings.Contains(prompt, "presentation outline"):
		return `{"topics":["Durability Mechanics","Replication Strategies","Isolation Levels"]}`, nil
	default:
		c := testContents[g.content%len(testContents)]
		g.content++
		return fmt.Sprintf(`{"title":"Part %d","content":[%q,%q,%q],"image_query":"","notes":"Speaker context."}`,
			g.content, c[0], c[1], c[2]), nil
	}
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := memory.NewPresentationRepo()
	builder := outline.NewBuilder(&scriptedGenerator{}, outline.NewClassifier(0, 0), 3, 20)
	renderer := pptx.NewRenderer(nil)
	store := storage.NewLocalStorage(t.TempDir())
	svc := presentation.NewService(repo, builder, renderer, store)

	ph := NewPresentationHandler(svc)
	sh := NewSystemHandler("autoslidex-api", "test", svc, nil)

	r := gin.New()
	r.GET("/", sh.Root)
	r.GET("/health", sh.Health)
	api := r.Group("/api")
	api.POST("/generate-outline", ph.GenerateOutline)
	api.PUT("/update-slides", ph.UpdateSlides)
	api.GET("/presentation/:id", ph.Get)
	api.POST("/generate-ppt", ph.GeneratePPT)
	api.GET("/download/:id", ph.Download)
	api.DELETE("/presentation/:id", ph.Delete)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPresentationLifecycle(t *testing.T) {
	r := newTestRouter(t)

	// 生成大纲
	w := doJSON(t, r, http.MethodPost, "/api/generate-outline", gin.H{
		"topic":      "database storage engines",
		"num_slides": 3,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("generate-outline status = %d, body = %s", w.Code, w.Body.String())
	}

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	var p entity.Presentation
	if err := json.Unmarshal(env.Data, &p); err != nil {
		t.Fatalf("decode presentation: %v", err)
	}
	if p.ID == "" || len(p.Slides) != 3 {
		t.Fatalf("unexpected outline: id=%q slides=%d", p.ID, len(p.Slides))
	}

	// 查询
	w = doJSON(t, r, http.MethodGet, "/api/presentation/"+p.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	// 渲染前下载应返回 400
	w = doJSON(t, r, http.MethodGet, "/api/download/"+p.ID, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("download before render status = %d, want 400", w.Code)
	}

	// 更新幻灯片
	w = doJSON(t, r, http.MethodPut, "/api/update-slides", gin.H{
		"presentation_id": p.ID,
		"slides": []gin.H{
			{"title": "Replacement", "content": []string{"first bullet", "second bullet", "third bullet"}},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update-slides status = %d, body = %s", w.Code, w.Body.String())
	}
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	var updated entity.Presentation
	_ = json.Unmarshal(env.Data, &updated)
	if len(updated.Slides) != 1 || updated.Slides[0].SlideNumber != 1 {
		t.Fatalf("update did not renumber: %+v", updated.Slides)
	}
	if updated.Status != entity.PresentationStatusUpdated {
		t.Errorf("status = %q, want updated", updated.Status)
	}

	// 渲染
	w = doJSON(t, r, http.MethodPost, "/api/generate-ppt", gin.H{
		"presentation_id": p.ID,
		"template":        "modern",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("generate-ppt status = %d, body = %s", w.Code, w.Body.String())
	}

	// 下载
	w = doJSON(t, r, http.MethodGet, "/api/download/"+p.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("download status = %d", w.Code)
	}
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("PK")) {
		t.Error("download body is not a zip archive")
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, ".pptx") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	// 删除
	w = doJSON(t, r, http.MethodDelete, "/api/presentation/"+p.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}

	// 删除后查询 404
	w = doJSON(t, r, http.MethodGet, "/api/presentation/"+p.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", w.Code)
	}
}

func TestGenerateOutlineValidation(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing topic", gin.H{"num_slides": 5}},
		{"zero slides", gin.H{"topic": "x", "num_slides": 0}},
		{"too many slides", gin.H{"topic": "x", "num_slides": 21}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/generate-outline", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestUnknownPresentation(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/presentation/does-not-exist", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get status = %d, want 404", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/generate-ppt", gin.H{"presentation_id": "does-not-exist"})
	if w.Code != http.StatusNotFound {
		t.Errorf("generate-ppt status = %d, want 404", w.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "healthy") {
		t.Errorf("health body = %s", w.Body.String())
	}
}

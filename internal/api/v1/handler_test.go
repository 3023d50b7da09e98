package v1

import (
	"bufio"
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/chenshien/Customer-report-conversion-tool/internal/config"
	"github.com/chenshien/Customer-report-conversion-tool/internal/importer"
	"github.com/chenshien/Customer-report-conversion-tool/internal/model"
	"github.com/chenshien/Customer-report-conversion-tool/internal/store"
	"github.com/chenshien/Customer-report-conversion-tool/internal/template"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dataDir := t.TempDir()
	st, err := store.New(filepath.Join(dataDir, "reportconv.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	h, err := NewHandler(config.DefaultConfig(), dataDir, st, template.Default(), nil)
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	r := gin.New()
	h.RegisterRoutes(r.Group("/api"))
	return r, st
}

func customerWorkbook(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "资产负债表"); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	for _, name := range []string{"现金流量表", "利润表"} {
		if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("new sheet: %v", err)
		}
	}
	sheets := map[string][][]interface{}{
		"资产负债表": {
			{"项目", "期末余额", "年初余额"},
			{"货币资金", 300.126, 200},
			{"短期借款", 100, 50},
			{"实收资本", 200.126, 150},
		},
		"现金流量表": {
			{"项目", "本期金额", "上期金额"},
			{"销售商品、提供劳务收到的现金", 1000, 800},
		},
		"利润表": {
			{"项目", "本期金额", "上期金额"},
			{"营业收入", 1200, 1000},
			{"营业成本", 700, 600},
		},
	}
	for name, rows := range sheets {
		for i, row := range rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func uploadRequest(t *testing.T, filename string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func analyze(t *testing.T, r *gin.Engine) AnalyzeResponse {
	t.Helper()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "客户报表.xlsx", customerWorkbook(t)))
	if w.Code != http.StatusOK {
		t.Fatalf("analyze status want=200 got=%d body=%s", w.Code, w.Body.String())
	}
	var resp AnalyzeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode analyze: %v", err)
	}
	return resp
}

type sseEvent struct {
	Type    string          `json:"type"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func parseSSE(t *testing.T, body string) []sseEvent {
	t.Helper()

	var events []sseEvent
	sc := bufio.NewScanner(strings.NewReader(body))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var evt sseEvent
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &evt); err != nil {
			t.Fatalf("decode event %q: %v", line, err)
		}
		events = append(events, evt)
	}
	return events
}

func process(t *testing.T, r *gin.Engine, payload map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()

	b, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/api/process", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAnalyze_ReturnsSuggestions(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t)
	resp := analyze(t, r)

	if !strings.HasSuffix(resp.FileID, ".xlsx") {
		t.Fatalf("fileId should keep extension, got=%s", resp.FileID)
	}
	if len(resp.Sheets) != 3 {
		t.Fatalf("sheets want=3 got=%d", len(resp.Sheets))
	}
	if got := resp.Suggested[model.StatementIncomeStatement]; got != "利润表" {
		t.Fatalf("income statement sheet want=利润表 got=%s", got)
	}
	if got := resp.Periods[model.StatementIncomeStatement][model.PeriodCurrent]; got != "本期金额" {
		t.Fatalf("income statement current want=本期金额 got=%s", got)
	}
	if len(resp.Remembered) != 0 {
		t.Fatalf("nothing remembered yet, got=%+v", resp.Remembered)
	}
}

func TestAnalyze_RejectsUnsupportedFile(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "notes.txt", []byte("hello")))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want=400 got=%d", w.Code)
	}
}

func TestProcess_StreamsAndStoresRun(t *testing.T) {
	t.Parallel()

	r, st := newTestRouter(t)
	resp := analyze(t, r)

	w := process(t, r, map[string]interface{}{"fileId": resp.FileID})
	if w.Code != http.StatusOK {
		t.Fatalf("process status want=200 got=%d body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type want=text/event-stream got=%s", ct)
	}

	events := parseSSE(t, w.Body.String())
	if len(events) == 0 || events[0].Type != importer.EventStart {
		t.Fatalf("first event should be start: %+v", events)
	}
	last := events[len(events)-1]
	if last.Type != importer.EventDone {
		t.Fatalf("last event want=done got=%s (%s)", last.Type, last.Message)
	}
	var outcome importer.RunOutcome
	if err := json.Unmarshal(last.Data, &outcome); err != nil {
		t.Fatalf("decode outcome: %v", err)
	}
	if !outcome.Persisted || outcome.RunID == "" {
		t.Fatalf("outcome mismatch: %+v", outcome)
	}

	// 详情中的金额按两位小数展示
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/runs/"+outcome.RunID, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("get run status want=200 got=%d", w.Code)
	}
	var detail struct {
		Result model.Result `json:"result"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode run: %v", err)
	}
	bs := detail.Result.Templates[model.StatementBalanceSheet]
	if got := bs.ValueOr0(template.BSMonetaryFunds, model.PeriodCurrent); got != 300.13 {
		t.Fatalf("货币资金 want=300.13 got=%v", got)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/runs/"+outcome.RunID+"/export", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("export status want=200 got=%d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "filename*=UTF-8''") {
		t.Fatalf("content disposition missing utf-8 name: %s", cd)
	}
	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()
	if idx, _ := f.GetSheetIndex(model.StatementBalanceSheet.Title()); idx < 0 {
		t.Fatalf("export missing balance sheet: %v", f.GetSheetList())
	}

	// 再次预览时返回记住的选择
	again := analyze(t, r)
	if got := again.Remembered[model.StatementCashFlow].Sheet; got != "现金流量表" {
		t.Fatalf("remembered cash flow sheet want=现金流量表 got=%s", got)
	}

	if n, _ := st.CountRuns(); n != 1 {
		t.Fatalf("stored runs want=1 got=%d", n)
	}
}

func TestProcess_InputShapeErrorReturns400(t *testing.T) {
	t.Parallel()

	r, st := newTestRouter(t)
	resp := analyze(t, r)

	w := process(t, r, map[string]interface{}{
		"fileId": resp.FileID,
		"sheets": map[string]string{"balance_sheet": "不存在的表"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want=400 got=%d body=%s", w.Code, w.Body.String())
	}
	if n, _ := st.CountRuns(); n != 0 {
		t.Fatalf("no run should be stored, got=%d", n)
	}
}

func TestProcess_BadRequests(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t)
	resp := analyze(t, r)

	cases := []struct {
		name    string
		payload map[string]interface{}
		want    int
	}{
		{"traversal", map[string]interface{}{"fileId": "../reportconv.db"}, http.StatusBadRequest},
		{"missing upload", map[string]interface{}{"fileId": "00000000-0000-0000-0000-000000000000.xlsx"}, http.StatusNotFound},
		{"unknown statement", map[string]interface{}{"fileId": resp.FileID, "sheets": map[string]string{"ledger": "x"}}, http.StatusBadRequest},
		{"unknown period", map[string]interface{}{
			"fileId":  resp.FileID,
			"periods": map[string]map[string]string{"cash_flow": {"next_year": "x"}},
		}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		if w := process(t, r, tc.payload); w.Code != tc.want {
			t.Fatalf("%s: status want=%d got=%d", tc.name, tc.want, w.Code)
		}
	}
}

func TestRuns_NotFoundAndDelete(t *testing.T) {
	t.Parallel()

	r, st := newTestRouter(t)

	res := model.NewResult("run-x", "客户报表.xlsx")
	for _, kind := range model.AllStatements {
		res.Templates[kind] = template.Default().New(kind)
	}
	if err := st.SaveRun(res, "computed"); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/runs", nil))
	var list struct {
		Runs  []store.RunSummary `json:"runs"`
		Total int                `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode runs: %v", err)
	}
	if list.Total != 1 || len(list.Runs) != 1 || list.Runs[0].ID != "run-x" {
		t.Fatalf("runs mismatch: %+v", list)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/runs/run-x", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("delete status want=200 got=%d", w.Code)
	}

	for _, path := range []string{"/api/runs/run-x", "/api/runs/run-x/export"} {
		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusNotFound {
			t.Fatalf("%s status want=404 got=%d", path, w.Code)
		}
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/runs/run-x", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete want=404 got=%d", w.Code)
	}
}

func TestStatusAndConfig(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	var status StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if status.Version != Version || status.TotalRuns != 0 || status.LastRun != nil {
		t.Fatalf("status mismatch: %+v", status)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/config", nil))
	var cfg ConfigResponse
	if err := json.Unmarshal(w.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("decode config: %v", err)
	}
	if cfg.TotalPolicy != "computed" || cfg.RatioDecimals != 2 || cfg.HeaderRows != 7 {
		t.Fatalf("config mismatch: %+v", cfg)
	}
}

func TestBuildExportContentDisposition(t *testing.T) {
	t.Parallel()

	got := buildExportContentDisposition("0123456789abcdef", "客户报表.xlsx")
	want := "attachment; filename=\"report-01234567.xlsx\"; filename*=UTF-8''%E5%AE%A2%E6%88%B7%E6%8A%A5%E8%A1%A8-%E6%A0%87%E5%87%86%E6%A8%A1%E6%9D%BF.xlsx"
	if got != want {
		t.Fatalf("content disposition mismatch:\nwant=%s\ngot =%s", want, got)
	}
}

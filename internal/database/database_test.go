package database

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	if err := Initialize(dbPath); err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() {
		if err := Close(); err != nil {
			t.Errorf("Failed to close database: %v", err)
		}
	})
}

func TestProjectLifecycle(t *testing.T) {
	setupTestDB(t)

	id, err := CreateProject("Office Tower", "Three floors")
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	p, err := GetProject(id)
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if p.Name != "Office Tower" {
		t.Errorf("Name = %q", p.Name)
	}
	if !p.Description.Valid || p.Description.String != "Three floors" {
		t.Errorf("Description = %+v", p.Description)
	}

	if _, err := CreateProject("Warehouse", ""); err != nil {
		t.Fatal(err)
	}
	projects, err := ListProjects()
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("Expected 2 projects, got %d", len(projects))
	}
	// Newest first
	if projects[0].Name != "Warehouse" {
		t.Errorf("Expected newest project first, got %q", projects[0].Name)
	}
}

func TestGetProjectNotFound(t *testing.T) {
	setupTestDB(t)
	if _, err := GetProject(9999); err == nil {
		t.Error("Expected an error for a missing project")
	}
}

func TestUpdateProjectRequirements(t *testing.T) {
	setupTestDB(t)

	id, err := CreateProject("P", "")
	if err != nil {
		t.Fatal(err)
	}

	payload := json.RawMessage(`{"mechanical":{"hvac_type":"radiant","cooling_load":250}}`)
	if err := UpdateProjectRequirements(id, payload); err != nil {
		t.Fatalf("UpdateProjectRequirements failed: %v", err)
	}

	p, err := GetProject(id)
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Mechanical struct {
			HVACType string `json:"hvac_type"`
		} `json:"mechanical"`
	}
	if err := json.Unmarshal(p.Requirements, &decoded); err != nil {
		t.Fatalf("Stored requirements do not decode: %v", err)
	}
	if decoded.Mechanical.HVACType != "radiant" {
		t.Errorf("HVACType = %q", decoded.Mechanical.HVACType)
	}
}

func TestBlueprintAndBuildingCodeUploads(t *testing.T) {
	setupTestDB(t)

	projectID, err := CreateProject("P", "")
	if err != nil {
		t.Fatal(err)
	}

	if b, err := LatestBlueprint(projectID); err != nil || b != nil {
		t.Fatalf("Expected no blueprint yet, got %+v, %v", b, err)
	}

	spatial := json.RawMessage(`{"spaces":[]}`)
	if _, err := SaveBlueprint(projectID, "plan.dxf", "/data/1_plan.dxf", spatial); err != nil {
		t.Fatalf("SaveBlueprint failed: %v", err)
	}
	if _, err := SaveBlueprint(projectID, "plan_v2.dxf", "/data/1_plan_v2.dxf", spatial); err != nil {
		t.Fatal(err)
	}

	b, err := LatestBlueprint(projectID)
	if err != nil {
		t.Fatalf("LatestBlueprint failed: %v", err)
	}
	if b == nil || b.Filename != "plan_v2.dxf" {
		t.Errorf("Expected latest upload, got %+v", b)
	}

	rules := json.RawMessage(`[{"type":"M","id":"1.1"}]`)
	if _, err := SaveBuildingCode(projectID, "code.txt", "/data/1_code.txt", rules); err != nil {
		t.Fatalf("SaveBuildingCode failed: %v", err)
	}
	c, err := LatestBuildingCode(projectID)
	if err != nil {
		t.Fatal(err)
	}
	if c == nil || c.Filename != "code.txt" {
		t.Errorf("Unexpected building code %+v", c)
	}
}

func TestDesignUpsert(t *testing.T) {
	setupTestDB(t)

	projectID, err := CreateProject("P", "")
	if err != nil {
		t.Fatal(err)
	}

	has, err := HasDesign(projectID)
	if err != nil || has {
		t.Fatalf("Expected no design yet: %v %v", has, err)
	}

	if err := UpsertDesign(projectID, DisciplineMechanical, json.RawMessage(`{"v":1}`)); err != nil {
		t.Fatalf("UpsertDesign failed: %v", err)
	}
	if err := UpsertDesign(projectID, DisciplineMechanical, json.RawMessage(`{"v":2}`)); err != nil {
		t.Fatalf("Second upsert failed: %v", err)
	}
	if err := UpsertDesign(projectID, DisciplineElectrical, json.RawMessage(`{"v":3}`)); err != nil {
		t.Fatal(err)
	}

	designs, err := GetDesigns(projectID)
	if err != nil {
		t.Fatalf("GetDesigns failed: %v", err)
	}
	if len(designs) != 2 {
		t.Fatalf("Expected 2 disciplines, got %d", len(designs))
	}
	if string(designs[DisciplineMechanical]) != `{"v":2}` {
		t.Errorf("Upsert did not replace data: %s", designs[DisciplineMechanical])
	}

	has, err = HasDesign(projectID)
	if err != nil || !has {
		t.Errorf("Expected HasDesign true: %v %v", has, err)
	}
}

func TestOutputFiles(t *testing.T) {
	setupTestDB(t)

	projectID, err := CreateProject("P", "")
	if err != nil {
		t.Fatal(err)
	}

	if err := RecordOutputFile(projectID, "DXF", "/out/a.dxf"); err != nil {
		t.Fatalf("RecordOutputFile failed: %v", err)
	}
	if err := RecordOutputFile(projectID, "DXF", "/out/b.dxf"); err != nil {
		t.Fatalf("Replacing output file failed: %v", err)
	}
	if err := RecordOutputFile(projectID, "JSON", "/out/a.json"); err != nil {
		t.Fatal(err)
	}

	files, err := ListOutputFiles(projectID)
	if err != nil {
		t.Fatalf("ListOutputFiles failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Expected 2 files, got %d", len(files))
	}
	byType := map[string]string{}
	for _, f := range files {
		byType[f.FileType] = f.Path
	}
	if byType["DXF"] != "/out/b.dxf" {
		t.Errorf("Expected replaced DXF path, got %q", byType["DXF"])
	}
}

func TestFeedback(t *testing.T) {
	setupTestDB(t)

	projectID, err := CreateProject("P", "")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := CreateFeedback(projectID, "mechanical", "ducts cross the stairwell"); err != nil {
		t.Fatalf("CreateFeedback failed: %v", err)
	}
	if _, err := CreateFeedback(projectID, "general", "looks good"); err != nil {
		t.Fatal(err)
	}

	items, err := ListFeedback(projectID)
	if err != nil {
		t.Fatalf("ListFeedback failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 feedback items, got %d", len(items))
	}
	if items[0].Comment != "looks good" {
		t.Errorf("Expected newest feedback first, got %q", items[0].Comment)
	}
}

func TestDesignJobs(t *testing.T) {
	setupTestDB(t)

	projectID, err := CreateProject("P", "")
	if err != nil {
		t.Fatal(err)
	}

	if j, err := LatestJobForProject(projectID); err != nil || j != nil {
		t.Fatalf("Expected no job yet, got %+v, %v", j, err)
	}

	id, err := CreateDesignJob(projectID)
	if err != nil {
		t.Fatalf("CreateDesignJob failed: %v", err)
	}
	if id == "" {
		t.Fatal("Expected a job id")
	}

	j, err := GetDesignJob(id)
	if err != nil {
		t.Fatalf("GetDesignJob failed: %v", err)
	}
	if j.Status != StatusPending || j.Progress != 0 {
		t.Errorf("New job should be pending at 0%%, got %s %d", j.Status, j.Progress)
	}

	active, err := HasActiveJob(projectID)
	if err != nil || !active {
		t.Errorf("Expected an active job: %v %v", active, err)
	}

	latest, err := LatestJobForProject(projectID)
	if err != nil || latest == nil || latest.ID != id {
		t.Errorf("LatestJobForProject mismatch: %+v %v", latest, err)
	}
}

func TestSystemVitals(t *testing.T) {
	setupTestDB(t)

	if m, err := LatestSystemVital(); err != nil || m != nil {
		t.Fatalf("Expected no vitals yet, got %+v, %v", m, err)
	}

	if err := StoreSystemVital(12.5, 40.0, 55.5); err != nil {
		t.Fatalf("StoreSystemVital failed: %v", err)
	}

	m, err := LatestSystemVital()
	if err != nil {
		t.Fatalf("LatestSystemVital failed: %v", err)
	}
	if m == nil || m.CPUPercent != 12.5 {
		t.Errorf("Unexpected vital %+v", m)
	}

	metrics, err := SystemVitalsSince(time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("SystemVitalsSince failed: %v", err)
	}
	if len(metrics) != 1 {
		t.Errorf("Expected 1 vital entry, got %d", len(metrics))
	}
}

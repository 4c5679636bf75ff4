package worker

import (
	"encoding/json"
	"fmt"

	"mepdesign/internal/blueprint"
	"mepdesign/internal/buildingcode"
	"mepdesign/internal/cad"
	"mepdesign/internal/database"
	"mepdesign/internal/forms"
	"mepdesign/internal/mep"
)

// generate runs the full design pipeline for one job: load inputs, generate
// the three discipline designs, optimize routing, persist the designs, and
// write the CAD output files.
func (w *Worker) generate(job *database.DesignJob) error {
	projectID := job.ProjectID

	w.updateJobStatus(job.ID, database.StatusInProgress, 10, "Loading project inputs", "")

	project, err := database.GetProject(projectID)
	if err != nil {
		return fmt.Errorf("failed to load project %d: %w", projectID, err)
	}

	spatial, err := loadSpatialData(projectID)
	if err != nil {
		return err
	}
	rules, err := loadRules(projectID)
	if err != nil {
		return err
	}
	requirements := forms.ParseRequirements(string(project.Requirements))

	w.updateJobStatus(job.ID, database.StatusInProgress, 30, "Generating MEP systems", "")
	engine := mep.NewEngine(spatial, rules, requirements)
	design := engine.Generate()

	w.updateJobStatus(job.ID, database.StatusInProgress, 60, "Optimizing routing", "")
	mep.OptimizeRouting(design)

	w.updateJobStatus(job.ID, database.StatusInProgress, 75, "Saving designs", "")
	disciplines := []struct {
		name string
		data interface{}
	}{
		{database.DisciplineMechanical, design.Mechanical},
		{database.DisciplineElectrical, design.Electrical},
		{database.DisciplinePlumbing, design.Plumbing},
	}
	for _, d := range disciplines {
		payload, err := json.Marshal(d.data)
		if err != nil {
			return fmt.Errorf("failed to encode %s design: %w", d.name, err)
		}
		if err := database.UpsertDesign(projectID, d.name, payload); err != nil {
			return err
		}
	}

	w.updateJobStatus(job.ID, database.StatusInProgress, 85, "Writing output files", "")
	outputs, err := cad.GenerateOutputs(projectID, design, w.outputDir)
	if err != nil {
		return fmt.Errorf("failed to generate CAD outputs: %w", err)
	}
	for fileType, path := range outputs {
		if err := database.RecordOutputFile(projectID, fileType, path); err != nil {
			return err
		}
	}

	return nil
}

// loadSpatialData returns the stored spatial data of the latest blueprint,
// or the placeholder layout when the project has no usable blueprint.
func loadSpatialData(projectID int64) (*blueprint.SpatialData, error) {
	bp, err := database.LatestBlueprint(projectID)
	if err != nil {
		return nil, err
	}
	if bp == nil || len(bp.SpatialData) == 0 {
		return blueprint.PlaceholderSpatialData(), nil
	}

	var spatial blueprint.SpatialData
	if err := json.Unmarshal(bp.SpatialData, &spatial); err != nil {
		return nil, fmt.Errorf("stored spatial data does not decode: %w", err)
	}
	if spatial.IsEmpty() {
		return blueprint.PlaceholderSpatialData(), nil
	}
	return &spatial, nil
}

// loadRules returns the stored rules of the latest building code document,
// or the default rule set when the project has none.
func loadRules(projectID int64) ([]buildingcode.Rule, error) {
	code, err := database.LatestBuildingCode(projectID)
	if err != nil {
		return nil, err
	}
	if code == nil || len(code.Rules) == 0 {
		return buildingcode.DefaultRules(), nil
	}

	var rules []buildingcode.Rule
	if err := json.Unmarshal(code.Rules, &rules); err != nil {
		return nil, fmt.Errorf("stored code rules do not decode: %w", err)
	}
	if len(rules) == 0 {
		return buildingcode.DefaultRules(), nil
	}
	return rules, nil
}

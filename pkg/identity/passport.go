package identity

import "time"

// Passport is an identity record with lineage to its creator: Project ->
// Job -> Task -> Operation -> Artifact. Each level is an explicit, typed
// constructor taking its predecessor passport as an argument; there is no
// base class and no reflection over field sets.

// ProjectPassport identifies a Project: the root of the lineage chain.
type ProjectPassport struct {
	ProjectID   string
	Category    string
	Environment string
	CreatedAt   time.Time
}

// NewProjectPassport mints a new ProjectPassport for category.
func NewProjectPassport(gen *Generator, category string) (ProjectPassport, error) {
	id, err := gen.Next("Project", category)
	if err != nil {
		return ProjectPassport{}, err
	}
	return ProjectPassport{
		ProjectID:   id,
		Category:    category,
		Environment: gen.env,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// JobPassport identifies a Job, inheriting its Project's lineage.
type JobPassport struct {
	ProjectPassport
	JobID     string
	DataType  string
	CreatedAt time.Time
}

// NewJobPassport mints a new JobPassport as a child of parent.
func NewJobPassport(gen *Generator, parent ProjectPassport, dataType string) (JobPassport, error) {
	id, err := gen.Next("Job", dataType)
	if err != nil {
		return JobPassport{}, err
	}
	return JobPassport{
		ProjectPassport: parent,
		JobID:           id,
		DataType:        dataType,
		CreatedAt:       time.Now().UTC(),
	}, nil
}

// TaskPassport identifies a Task, inheriting its Job's lineage.
type TaskPassport struct {
	JobPassport
	TaskID    string
	CreatedAt time.Time
}

// NewTaskPassport mints a new TaskPassport as a child of parent.
func NewTaskPassport(gen *Generator, parent JobPassport) (TaskPassport, error) {
	id, err := gen.Next("Task", parent.DataType)
	if err != nil {
		return TaskPassport{}, err
	}
	return TaskPassport{
		JobPassport: parent,
		TaskID:      id,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// OperationPassport identifies one Task operation (extract, transform, or
// load), inheriting its Task's lineage.
type OperationPassport struct {
	TaskPassport
	OperationID   string
	OperationType string
	CreatedAt     time.Time
}

// NewOperationPassport mints a new OperationPassport as a child of parent.
func NewOperationPassport(gen *Generator, parent TaskPassport, operationType string) (OperationPassport, error) {
	id, err := gen.Next("Operation", parent.DataType)
	if err != nil {
		return OperationPassport{}, err
	}
	return OperationPassport{
		TaskPassport:  parent,
		OperationID:   id,
		OperationType: operationType,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// ArtifactPassport identifies one Artifact (an AppData record, a review, a
// request, or a response) produced by an Operation. This is the record
// actually persisted alongside an entity, per spec.md's data model.
type ArtifactPassport struct {
	OperationPassport
	ArtifactID string
	Creator    string
	CreatedAt  time.Time
}

// NewArtifactPassport mints a new ArtifactPassport as a child of parent.
// creator identifies the component that produced the artifact (e.g.
// "ExtractStage", "TransformStage").
func NewArtifactPassport(gen *Generator, parent OperationPassport, creator string) (ArtifactPassport, error) {
	id, err := gen.Next("Artifact", parent.DataType)
	if err != nil {
		return ArtifactPassport{}, err
	}
	return ArtifactPassport{
		OperationPassport: parent,
		ArtifactID:        id,
		Creator:           creator,
		CreatedAt:         time.Now().UTC(),
	}, nil
}

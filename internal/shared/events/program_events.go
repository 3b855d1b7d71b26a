package events

// Event names for the program aggregate.
const (
	ProgramCreatedName = "program.created"
	ProgramUpdatedName = "program.updated"
	ProgramDeletedName = "program.deleted"
)

type ProgramCreated struct {
	base
	ProgramID string
	Title     string
}

func NewProgramCreated(programID, title string) ProgramCreated {
	return ProgramCreated{base: newBase(), ProgramID: programID, Title: title}
}

func (ProgramCreated) EventName() string { return ProgramCreatedName }

type ProgramUpdated struct {
	base
	ProgramID     string
	UpdatedFields []string
}

func NewProgramUpdated(programID string, updatedFields []string) ProgramUpdated {
	return ProgramUpdated{base: newBase(), ProgramID: programID, UpdatedFields: updatedFields}
}

func (ProgramUpdated) EventName() string { return ProgramUpdatedName }

type ProgramDeleted struct {
	base
	ProgramID string
}

func NewProgramDeleted(programID string) ProgramDeleted {
	return ProgramDeleted{base: newBase(), ProgramID: programID}
}

func (ProgramDeleted) EventName() string { return ProgramDeletedName }

package model

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Todo is a single technique entry. Scores are stored as small signed
// integers and are always present once the row exists.
type Todo struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Movement   int8   `json:"movement"`
	Punishment int8   `json:"punishment"`
	Mixup      int8   `json:"mixup"`
	Combo      int8   `json:"combo"`
}

type CreateTodoInput struct {
	Title      string
	Movement   *int8
	Punishment *int8
	Mixup      *int8
	Combo      *int8
}

// UpdateTodoInput carries a partial score update. Nil fields keep the stored value.
type UpdateTodoInput struct {
	Movement   *int8
	Punishment *int8
	Mixup      *int8
	Combo      *int8
}

type ListParams struct {
	Page  int
	Limit int
}

// Normalize clamps non-positive values to their defaults.
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	return p
}

// Offset returns the index of the first item on the page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Paginate returns the window of todos described by params. Todos must
// already be in their final order. The result is never nil.
func Paginate(todos []Todo, params ListParams) []Todo {
	params = params.Normalize()

	// Compare before multiplying so huge page values cannot overflow.
	if params.Page-1 > len(todos)/params.Limit {
		return []Todo{}
	}
	offset := params.Offset()
	if offset >= len(todos) {
		return []Todo{}
	}
	end := len(todos)
	if params.Limit < end-offset {
		end = offset + params.Limit
	}

	page := make([]Todo, end-offset)
	copy(page, todos[offset:end])
	return page
}

// ApplyScores merges the provided fields of input into t.
func (t Todo) ApplyScores(input UpdateTodoInput) Todo {
	if input.Movement != nil {
		t.Movement = *input.Movement
	}
	if input.Punishment != nil {
		t.Punishment = *input.Punishment
	}
	if input.Mixup != nil {
		t.Mixup = *input.Mixup
	}
	if input.Combo != nil {
		t.Combo = *input.Combo
	}
	return t
}

func valueOrZero(v *int8) int8 {
	if v == nil {
		return 0
	}
	return *v
}

// NewTodo builds the record to insert for input, defaulting absent scores to zero.
func NewTodo(id string, input CreateTodoInput) Todo {
	return Todo{
		ID:         id,
		Title:      input.Title,
		Movement:   valueOrZero(input.Movement),
		Punishment: valueOrZero(input.Punishment),
		Mixup:      valueOrZero(input.Mixup),
		Combo:      valueOrZero(input.Combo),
	}
}

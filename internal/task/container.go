package task

type TaskContainer struct {
	Handler *Handler
	Store   Store
}

func NewTaskContainer(store Store) *TaskContainer {
	return &TaskContainer{
		Handler: NewHandler(store),
		Store:   store,
	}
}

// Package today is a sample TODO service wired through the engine's public
// registration surface: appointments, tasks and unread folder counts behind
// Relay-style connections, a node lookup, and a completeTask mutation. It
// doubles as the integration fixture for the engine.
package today

import (
	"bytes"
	"sync"

	language "github.com/davmik/gqlserve/internal/language"
	service "github.com/davmik/gqlserve/internal/service"
)

// Appointment is a calendar entry with a start time and subject.
type Appointment struct {
	ID      []byte
	When    string
	Subject string
	IsNow   bool
}

// Task is a TODO item.
type Task struct {
	ID         []byte
	Title      string
	IsComplete bool
}

// Folder carries an unread count.
type Folder struct {
	ID          []byte
	Name        string
	UnreadCount int
}

// Service owns the fixture data and builds the resolver graph over it.
// completeTask mutates tasks, so access to them is serialized.
type Service struct {
	mu           sync.Mutex
	appointments []Appointment
	tasks        []Task
	folders      []Folder
}

func NewService(appointments []Appointment, tasks []Task, folders []Folder) *Service {
	return &Service{appointments: appointments, tasks: tasks, folders: folders}
}

// Request builds the operation roots for this service. The returned Request
// is immutable and safe for concurrent use.
func (s *Service) Request() *service.Request {
	return service.NewRequest(service.TypeMap{
		language.Query:        s.queryObject(),
		language.Mutation:     s.mutationObject(),
		language.Subscription: s.subscriptionObject(),
	})
}

func (s *Service) queryObject() *service.Object {
	return service.NewObject(service.NewTypeNames("Query"), service.ResolverMap{
		"node": func(p service.ResolverParams) (any, error) {
			id, err := service.IDArgument().Require("id", p.Arguments)
			if err != nil {
				return nil, err
			}
			return service.ObjectResult(service.ModifierNullable).Convert(s.node(id.([]byte)), p)
		},
		"appointments": func(p service.ResolverParams) (any, error) {
			window, err := connectionWindow(p.Arguments, len(s.appointments))
			if err != nil {
				return nil, err
			}
			nodes := make([]*service.Object, 0, window.len())
			for _, a := range s.appointments[window.low:window.high] {
				nodes = append(nodes, appointmentObject(a))
			}
			return service.ObjectResult().Convert(connectionObject(nodes, window), p)
		},
		"tasks": func(p service.ResolverParams) (any, error) {
			window, err := connectionWindow(p.Arguments, len(s.tasks))
			if err != nil {
				return nil, err
			}
			s.mu.Lock()
			nodes := make([]*service.Object, 0, window.len())
			for _, task := range s.tasks[window.low:window.high] {
				nodes = append(nodes, taskObject(task))
			}
			s.mu.Unlock()
			return service.ObjectResult().Convert(connectionObject(nodes, window), p)
		},
		"unreadCounts": func(p service.ResolverParams) (any, error) {
			window, err := connectionWindow(p.Arguments, len(s.folders))
			if err != nil {
				return nil, err
			}
			nodes := make([]*service.Object, 0, window.len())
			for _, f := range s.folders[window.low:window.high] {
				nodes = append(nodes, folderObject(f))
			}
			return service.ObjectResult().Convert(connectionObject(nodes, window), p)
		},
		"appointmentsById": func(p service.ResolverParams) (any, error) {
			ids, err := service.IDArgument(service.ModifierList).Require("ids", p.Arguments)
			if err != nil {
				return nil, err
			}
			matches := make([]any, 0, len(ids.([]any)))
			for _, id := range ids.([]any) {
				for _, a := range s.appointments {
					if bytes.Equal(a.ID, id.([]byte)) {
						matches = append(matches, appointmentObject(a))
					}
				}
			}
			return service.ObjectResult(service.ModifierList).Convert(matches, p)
		},
		"tasksById": func(p service.ResolverParams) (any, error) {
			ids, err := service.IDArgument(service.ModifierList).Require("ids", p.Arguments)
			if err != nil {
				return nil, err
			}
			s.mu.Lock()
			defer s.mu.Unlock()
			matches := make([]any, 0, len(ids.([]any)))
			for _, id := range ids.([]any) {
				for _, task := range s.tasks {
					if bytes.Equal(task.ID, id.([]byte)) {
						matches = append(matches, taskObject(task))
					}
				}
			}
			return service.ObjectResult(service.ModifierList).Convert(matches, p)
		},
		"unreadCountsById": func(p service.ResolverParams) (any, error) {
			ids, err := service.IDArgument(service.ModifierList).Require("ids", p.Arguments)
			if err != nil {
				return nil, err
			}
			matches := make([]any, 0, len(ids.([]any)))
			for _, id := range ids.([]any) {
				for _, f := range s.folders {
					if bytes.Equal(f.ID, id.([]byte)) {
						matches = append(matches, folderObject(f))
					}
				}
			}
			return service.ObjectResult(service.ModifierList).Convert(matches, p)
		},
	})
}

func (s *Service) mutationObject() *service.Object {
	return service.NewObject(service.NewTypeNames("Mutation"), service.ResolverMap{
		"completeTask": func(p service.ResolverParams) (any, error) {
			input, err := service.ScalarArgument().Require("input", p.Arguments)
			if err != nil {
				return nil, err
			}
			fields, ok := input.(*service.JSONObject)
			if !ok {
				return nil, service.NewSchemaError("Invalid argument: input message: not an object")
			}

			id, err := service.IDArgument().Require("id", fields)
			if err != nil {
				return nil, err
			}
			isComplete := true
			if v, ok := service.BooleanArgument(service.ModifierNullable).Find("isComplete", fields); ok && v != nil {
				isComplete = v.(bool)
			}
			clientMutationID, _ := service.StringArgument(service.ModifierNullable).Find("clientMutationId", fields)

			s.mu.Lock()
			var updated *Task
			for i := range s.tasks {
				if bytes.Equal(s.tasks[i].ID, id.([]byte)) {
					s.tasks[i].IsComplete = isComplete
					task := s.tasks[i]
					updated = &task
					break
				}
			}
			s.mu.Unlock()
			if updated == nil {
				return nil, service.NewSchemaError("Invalid argument: id message: unknown task")
			}

			return service.ObjectResult().Convert(completeTaskPayload(*updated, clientMutationID), p)
		},
	})
}

func (s *Service) subscriptionObject() *service.Object {
	return service.NewObject(service.NewTypeNames("Subscription"), service.ResolverMap{
		"nextAppointmentChange": func(p service.ResolverParams) (any, error) {
			if len(s.appointments) == 0 {
				return service.ObjectResult(service.ModifierNullable).Convert(nil, p)
			}
			return service.ObjectResult(service.ModifierNullable).Convert(appointmentObject(s.appointments[0]), p)
		},
	})
}

// node resolves a Node interface lookup; an unknown id is not an error.
func (s *Service) node(id []byte) *service.Object {
	for _, a := range s.appointments {
		if bytes.Equal(a.ID, id) {
			return appointmentObject(a)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, task := range s.tasks {
		if bytes.Equal(task.ID, id) {
			return taskObject(task)
		}
	}
	for _, f := range s.folders {
		if bytes.Equal(f.ID, id) {
			return folderObject(f)
		}
	}
	return nil
}

func appointmentObject(a Appointment) *service.Object {
	return service.NewObject(service.NewTypeNames("Appointment", "Node"), service.ResolverMap{
		"id": func(p service.ResolverParams) (any, error) {
			return service.IDResult().Convert(a.ID, p)
		},
		"when": func(p service.ResolverParams) (any, error) {
			if a.When == "" {
				return service.ScalarResult(service.ModifierNullable).Convert(nil, p)
			}
			return service.ScalarResult(service.ModifierNullable).Convert(a.When, p)
		},
		"subject": func(p service.ResolverParams) (any, error) {
			if a.Subject == "" {
				return service.StringResult(service.ModifierNullable).Convert(nil, p)
			}
			return service.StringResult(service.ModifierNullable).Convert(a.Subject, p)
		},
		"isNow": func(p service.ResolverParams) (any, error) {
			return service.BooleanResult().Convert(a.IsNow, p)
		},
	})
}

func taskObject(task Task) *service.Object {
	return service.NewObject(service.NewTypeNames("Task", "Node"), service.ResolverMap{
		"id": func(p service.ResolverParams) (any, error) {
			return service.IDResult().Convert(task.ID, p)
		},
		"title": func(p service.ResolverParams) (any, error) {
			if task.Title == "" {
				return service.StringResult(service.ModifierNullable).Convert(nil, p)
			}
			return service.StringResult(service.ModifierNullable).Convert(task.Title, p)
		},
		"isComplete": func(p service.ResolverParams) (any, error) {
			return service.BooleanResult().Convert(task.IsComplete, p)
		},
	})
}

func folderObject(f Folder) *service.Object {
	return service.NewObject(service.NewTypeNames("Folder", "Node"), service.ResolverMap{
		"id": func(p service.ResolverParams) (any, error) {
			return service.IDResult().Convert(f.ID, p)
		},
		"name": func(p service.ResolverParams) (any, error) {
			if f.Name == "" {
				return service.StringResult(service.ModifierNullable).Convert(nil, p)
			}
			return service.StringResult(service.ModifierNullable).Convert(f.Name, p)
		},
		"unreadCount": func(p service.ResolverParams) (any, error) {
			return service.IntResult().Convert(f.UnreadCount, p)
		},
	})
}

func completeTaskPayload(task Task, clientMutationID any) *service.Object {
	return service.NewObject(service.NewTypeNames("CompleteTaskPayload"), service.ResolverMap{
		"task": func(p service.ResolverParams) (any, error) {
			return service.ObjectResult(service.ModifierNullable).Convert(taskObject(task), p)
		},
		"clientMutationId": func(p service.ResolverParams) (any, error) {
			return service.StringResult(service.ModifierNullable).Convert(clientMutationID, p)
		},
	})
}

// window is the slice of fixture rows a connection exposes after applying
// first/last pagination arguments.
type window struct {
	low, high int
	total     int
}

func (w window) len() int { return w.high - w.low }

func connectionWindow(arguments *service.JSONObject, total int) (window, error) {
	w := window{low: 0, high: total, total: total}
	if v, err := service.IntArgument(service.ModifierNullable).Require("first", arguments); err != nil {
		return w, err
	} else if v != nil {
		if n := v.(int); n < w.len() {
			w.high = w.low + n
		}
	}
	if v, err := service.IntArgument(service.ModifierNullable).Require("last", arguments); err != nil {
		return w, err
	} else if v != nil {
		if n := v.(int); n < w.len() {
			w.low = w.high - n
		}
	}
	return w, nil
}

// connectionObject wraps nodes into a Relay-style connection with edges and
// pageInfo. Edges expose only their node; no cursor field is provided.
func connectionObject(nodes []*service.Object, w window) *service.Object {
	return service.NewObject(service.NewTypeNames("Connection"), service.ResolverMap{
		"pageInfo": func(p service.ResolverParams) (any, error) {
			return service.ObjectResult().Convert(pageInfoObject(w), p)
		},
		"edges": func(p service.ResolverParams) (any, error) {
			edges := make([]any, len(nodes))
			for i, node := range nodes {
				edges[i] = edgeObject(node)
			}
			return service.ObjectResult(service.ModifierNullable, service.ModifierList, service.ModifierNullable).Convert(edges, p)
		},
	})
}

func pageInfoObject(w window) *service.Object {
	return service.NewObject(service.NewTypeNames("PageInfo"), service.ResolverMap{
		"hasNextPage": func(p service.ResolverParams) (any, error) {
			return service.BooleanResult().Convert(w.high < w.total, p)
		},
		"hasPreviousPage": func(p service.ResolverParams) (any, error) {
			return service.BooleanResult().Convert(w.low > 0, p)
		},
	})
}

func edgeObject(node *service.Object) *service.Object {
	return service.NewObject(service.NewTypeNames("Edge"), service.ResolverMap{
		"node": func(p service.ResolverParams) (any, error) {
			return service.ObjectResult(service.ModifierNullable).Convert(node, p)
		},
	})
}

package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/synergysphere/synergyboard/internal/activity"
	"github.com/synergysphere/synergyboard/internal/domain"
	"github.com/synergysphere/synergyboard/internal/handler"
	"github.com/synergysphere/synergyboard/internal/handler/dto"
	"github.com/synergysphere/synergyboard/internal/service"
	"github.com/synergysphere/synergyboard/internal/store"
)

type HandlerTestSuite struct {
	suite.Suite
	store       *store.Store
	taskService *service.TaskService
	mux         *http.ServeMux

	// Test fixtures
	projectID string
	janeID    string
	janeToken string
	raviID    string
	raviToken string
}

func (s *HandlerTestSuite) SetupTest() {
	s.store = store.New(nil)
	recorder := activity.NewRecorder()
	s.taskService = service.NewTaskService(s.store, recorder)

	s.projectID = "5e7b1a46-9c3e-4f4e-8f1a-0d2c5b8e9a01"
	s.janeID = "8b2d4f1c-6a9e-4c3b-9d7f-1e5a2c8b4f02"
	s.janeToken = "token-jane"
	s.raviID = "3c9f7e2a-1b4d-4e8c-a6f3-7d2b9e5c1a03"
	s.raviToken = "token-ravi"

	seed := &store.SeedData{
		Projects: []store.SeedProject{{ID: s.projectID, Name: "Test Project"}},
		Members: []store.SeedMember{
			{ID: s.janeID, Name: "Jane Cooper", Token: s.janeToken, Role: "owner"},
			{ID: s.raviID, Name: "Ravi Patel", Token: s.raviToken},
		},
	}
	s.Require().NoError(s.store.ApplySeed(seed, recorder, time.Now()))

	s.mux = http.NewServeMux()
	handler.New(s.store, s.taskService).RegisterRoutes(s.mux)
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

// Helper to make authenticated request
func (s *HandlerTestSuite) makeRequest(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var bodyReader *bytes.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	} else {
		bodyReader = bytes.NewReader([]byte{})
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.mux.ServeHTTP(w, req)
	return w
}

// Helper to create a task through the service layer
func (s *HandlerTestSuite) createTask(title string, priority domain.TaskPriority) *domain.Task {
	task, err := s.taskService.Create(context.Background(), service.CreateTaskParams{
		ProjectID: s.projectID,
		Title:     title,
		Priority:  priority,
	}, activity.Actor{ID: s.janeID, Name: "Jane Cooper"})
	s.Require().NoError(err)
	return task
}

func (s *HandlerTestSuite) decodeTask(w *httptest.ResponseRecorder) dto.TaskResponse {
	var resp dto.TaskResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

// Test 1: Unauthenticated request returns 401
func (s *HandlerTestSuite) TestCreateTask_Unauthorized() {
	reqBody := dto.CreateTaskRequest{
		ProjectID: s.projectID,
		Title:     "Test Task",
	}

	w := s.makeRequest("POST", "/api/v1/tasks", "", reqBody)

	s.Equal(http.StatusUnauthorized, w.Code)
}

// Test 2: Unknown token returns 401
func (s *HandlerTestSuite) TestListTasks_InvalidToken() {
	w := s.makeRequest("GET", "/api/v1/tasks", "token-nobody", nil)

	s.Equal(http.StatusUnauthorized, w.Code)
}

// Test 3: Health check needs no auth
func (s *HandlerTestSuite) TestHealthz() {
	w := s.makeRequest("GET", "/healthz", "", nil)

	s.Equal(http.StatusOK, w.Code)
}

// Test 4: Create task lands in the todo column
func (s *HandlerTestSuite) TestCreateTask() {
	due := "2030-06-15"
	reqBody := dto.CreateTaskRequest{
		ProjectID: s.projectID,
		Title:     "Design UI",
		Priority:  "high",
		DueDate:   &due,
	}

	w := s.makeRequest("POST", "/api/v1/tasks", s.janeToken, reqBody)

	s.Require().Equal(http.StatusCreated, w.Code)
	resp := s.decodeTask(w)
	s.Equal("Design UI", resp.Title)
	s.Equal("todo", resp.Status)
	s.Equal("high", resp.Priority)
	s.Require().NotNil(resp.DueDate)
	s.Equal(due, *resp.DueDate)
	s.False(resp.IsOverdue)
}

// Test 5: Validation error returns 422
func (s *HandlerTestSuite) TestCreateTask_ValidationError() {
	reqBody := dto.CreateTaskRequest{ProjectID: s.projectID}

	w := s.makeRequest("POST", "/api/v1/tasks", s.janeToken, reqBody)

	s.Equal(http.StatusUnprocessableEntity, w.Code)

	var errResp dto.ErrorResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&errResp))
	s.Equal("VALIDATION_ERROR", errResp.Error.Code)
}

// Test 6: Malformed due date returns 422
func (s *HandlerTestSuite) TestCreateTask_BadDueDate() {
	due := "June 15"
	reqBody := dto.CreateTaskRequest{
		ProjectID: s.projectID,
		Title:     "Design UI",
		DueDate:   &due,
	}

	w := s.makeRequest("POST", "/api/v1/tasks", s.janeToken, reqBody)

	s.Equal(http.StatusUnprocessableEntity, w.Code)
}

// Test 7: Search filter narrows the list
func (s *HandlerTestSuite) TestListTasks_SearchFilter() {
	s.createTask("Design UI", domain.TaskPriorityLow)
	s.createTask("API work", domain.TaskPriorityHigh)
	s.createTask("Write docs", domain.TaskPriorityMedium)

	w := s.makeRequest("GET", "/api/v1/tasks?search=api", s.janeToken, nil)

	s.Require().Equal(http.StatusOK, w.Code)

	var respBody dto.TasksListResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&respBody))
	s.Equal(1, respBody.Total)
	s.Equal("API work", respBody.Tasks[0].Title)
}

// Test 8: Sort parameter orders the list
func (s *HandlerTestSuite) TestListTasks_SortByPriority() {
	s.createTask("low one", domain.TaskPriorityLow)
	s.createTask("high one", domain.TaskPriorityHigh)

	w := s.makeRequest("GET", "/api/v1/tasks?sort=priority", s.janeToken, nil)

	s.Require().Equal(http.StatusOK, w.Code)

	var respBody dto.TasksListResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&respBody))
	s.Require().Equal(2, respBody.Total)
	s.Equal("high one", respBody.Tasks[0].Title)
	s.Equal("low one", respBody.Tasks[1].Title)
}

// Test 9: Board groups every task into exactly one column
func (s *HandlerTestSuite) TestBoard() {
	a := s.createTask("a", domain.TaskPriorityMedium)
	s.createTask("b", domain.TaskPriorityMedium)
	_, err := s.taskService.Move(context.Background(), a.ID, domain.TaskStatusDone,
		activity.Actor{ID: s.janeID, Name: "Jane Cooper"})
	s.Require().NoError(err)

	w := s.makeRequest("GET", "/api/v1/tasks/board", s.janeToken, nil)

	s.Require().Equal(http.StatusOK, w.Code)

	var respBody dto.BoardResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&respBody))
	s.Require().Len(respBody.Columns, 3)
	s.Equal("todo", respBody.Columns[0].Status)
	s.Equal("in_progress", respBody.Columns[1].Status)
	s.Equal("done", respBody.Columns[2].Status)
	s.Len(respBody.Columns[0].Tasks, 1)
	s.Len(respBody.Columns[1].Tasks, 0)
	s.Require().Len(respBody.Columns[2].Tasks, 1)
	s.Equal("a", respBody.Columns[2].Tasks[0].Title)
}

// Test 10: Unknown task returns 404
func (s *HandlerTestSuite) TestGetTask_NotFound() {
	w := s.makeRequest("GET", "/api/v1/tasks/0c6e3a5f-4e3a-4ffe-8abc-0d2c5b8e9a99", s.janeToken, nil)

	s.Equal(http.StatusNotFound, w.Code)

	var errResp dto.ErrorResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&errResp))
	s.Equal("TASK_NOT_FOUND", errResp.Error.Code)
}

// Test 11: Non-UUID task id returns 400
func (s *HandlerTestSuite) TestGetTask_InvalidID() {
	w := s.makeRequest("GET", "/api/v1/tasks/not-a-uuid", s.janeToken, nil)

	s.Equal(http.StatusBadRequest, w.Code)
}

// Test 12: Move via the status endpoint
func (s *HandlerTestSuite) TestMoveTask() {
	task := s.createTask("Design UI", domain.TaskPriorityMedium)

	w := s.makeRequest("PATCH", "/api/v1/tasks/"+task.ID+"/status", s.janeToken,
		dto.MoveTaskRequest{Status: "in_progress"})

	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("in_progress", s.decodeTask(w).Status)
}

// Test 13: Invalid target status returns 422
func (s *HandlerTestSuite) TestMoveTask_InvalidStatus() {
	task := s.createTask("Design UI", domain.TaskPriorityMedium)

	w := s.makeRequest("PATCH", "/api/v1/tasks/"+task.ID+"/status", s.janeToken,
		dto.MoveTaskRequest{Status: "archived"})

	s.Equal(http.StatusUnprocessableEntity, w.Code)
}

// Test 14: Toggle flips todo to done
func (s *HandlerTestSuite) TestToggleTask() {
	task := s.createTask("Design UI", domain.TaskPriorityMedium)

	w := s.makeRequest("POST", "/api/v1/tasks/"+task.ID+"/toggle", s.janeToken, nil)

	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("done", s.decodeTask(w).Status)
}

// Test 15: Assign resolves the member name; null unassigns
func (s *HandlerTestSuite) TestAssignTask() {
	task := s.createTask("Fix nav", domain.TaskPriorityMedium)

	w := s.makeRequest("PATCH", "/api/v1/tasks/"+task.ID+"/assignee", s.janeToken,
		dto.AssignTaskRequest{AssigneeID: &s.raviID})

	s.Require().Equal(http.StatusOK, w.Code)
	resp := s.decodeTask(w)
	s.Require().NotNil(resp.AssigneeID)
	s.Equal(s.raviID, *resp.AssigneeID)
	s.Equal("Ravi Patel", resp.AssigneeName)

	w = s.makeRequest("PATCH", "/api/v1/tasks/"+task.ID+"/assignee", s.janeToken,
		dto.AssignTaskRequest{AssigneeID: nil})

	s.Require().Equal(http.StatusOK, w.Code)
	s.Nil(s.decodeTask(w).AssigneeID)
}

// Test 16: Assigning an unknown member returns 404
func (s *HandlerTestSuite) TestAssignTask_UnknownMember() {
	task := s.createTask("Fix nav", domain.TaskPriorityMedium)
	ghost := "0c6e3a5f-4e3a-4ffe-8abc-0d2c5b8e9a99"

	w := s.makeRequest("PATCH", "/api/v1/tasks/"+task.ID+"/assignee", s.janeToken,
		dto.AssignTaskRequest{AssigneeID: &ghost})

	s.Equal(http.StatusNotFound, w.Code)
}

// Test 17: Activity feed carries relative timestamps
func (s *HandlerTestSuite) TestTaskActivity() {
	task := s.createTask("Design UI", domain.TaskPriorityMedium)
	_, err := s.taskService.Move(context.Background(), task.ID, domain.TaskStatusDone,
		activity.Actor{ID: s.raviID, Name: "Ravi Patel"})
	s.Require().NoError(err)

	w := s.makeRequest("GET", "/api/v1/tasks/"+task.ID+"/activity", s.janeToken, nil)

	s.Require().Equal(http.StatusOK, w.Code)

	var respBody dto.ActivityListResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&respBody))
	s.Require().Len(respBody.Entries, 2)
	s.Equal("created", respBody.Entries[0].Type)
	s.Equal("status_changed", respBody.Entries[1].Type)
	s.Equal("Ravi Patel", respBody.Entries[1].ActorName)
	s.Equal("Just now", respBody.Entries[1].When)
}

// Test 18: Activity trail outlives deletion
func (s *HandlerTestSuite) TestDeleteTask_ActivityRetained() {
	task := s.createTask("Doomed", domain.TaskPriorityMedium)

	w := s.makeRequest("DELETE", "/api/v1/tasks/"+task.ID, s.janeToken, nil)
	s.Require().Equal(http.StatusNoContent, w.Code)

	w = s.makeRequest("GET", "/api/v1/tasks/"+task.ID, s.janeToken, nil)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.makeRequest("GET", "/api/v1/tasks/"+task.ID+"/activity", s.janeToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var respBody dto.ActivityListResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&respBody))
	s.Require().Len(respBody.Entries, 2)
	s.Equal("deleted", respBody.Entries[1].Type)
}

// Test 19: Project stats counts every column
func (s *HandlerTestSuite) TestProjectStats() {
	a := s.createTask("a", domain.TaskPriorityMedium)
	s.createTask("b", domain.TaskPriorityMedium)
	_, err := s.taskService.Move(context.Background(), a.ID, domain.TaskStatusDone,
		activity.Actor{ID: s.janeID, Name: "Jane Cooper"})
	s.Require().NoError(err)

	w := s.makeRequest("GET", "/api/v1/projects/"+s.projectID+"/stats", s.janeToken, nil)

	s.Require().Equal(http.StatusOK, w.Code)

	var respBody dto.ProjectStatsResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&respBody))
	s.Equal(2, respBody.TotalTasks)
	s.Equal(1, respBody.ByStatus["todo"])
	s.Equal(0, respBody.ByStatus["in_progress"])
	s.Equal(1, respBody.ByStatus["done"])
	s.Equal(1, respBody.CompletedTasks)
	s.InDelta(50.0, respBody.CompletionRatePercent, 0.01)
}

// Test 20: Member listing never leaks tokens
func (s *HandlerTestSuite) TestListMembers() {
	w := s.makeRequest("GET", "/api/v1/members", s.janeToken, nil)

	s.Require().Equal(http.StatusOK, w.Code)

	raw := w.Body.String()
	s.NotContains(raw, "token")

	var members []dto.MemberResponse
	s.Require().NoError(json.Unmarshal([]byte(raw), &members))
	s.Require().Len(members, 2)
	s.Equal("Jane Cooper", members[0].Name)
	s.Equal("Ravi Patel", members[1].Name)
}

// Test 21: /me identifies the token holder
func (s *HandlerTestSuite) TestMe() {
	w := s.makeRequest("GET", "/api/v1/me", s.raviToken, nil)

	s.Require().Equal(http.StatusOK, w.Code)

	var me dto.MemberResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&me))
	s.Equal(s.raviID, me.ID)
	s.Equal("Ravi Patel", me.Name)
}

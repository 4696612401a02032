package controller

import (
	"net/http"

	"github.com/Freeeeeet/music_school/internal/model"
	"github.com/Freeeeeet/music_school/internal/service"
	"github.com/gin-gonic/gin"
)

func (h *Handlers) ListStudents(c *gin.Context) {
	students, err := h.roster.ListStudents(c.Request.Context(), service.StudentFilter{
		Status: c.Query("status"),
		Query:  c.Query("q"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, students)
}

func (h *Handlers) GetStudent(c *gin.Context) {
	id, ok := pathID(c, model.EntityStudent)
	if !ok {
		return
	}
	student, err := h.roster.GetStudent(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

func (h *Handlers) CreateStudent(c *gin.Context) {
	var fields model.Student
	if !bindJSON(c, &fields) {
		return
	}
	student, err := h.roster.CreateStudent(c.Request.Context(), fields)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, student)
}

func (h *Handlers) UpdateStudent(c *gin.Context) {
	id, ok := pathID(c, model.EntityStudent)
	if !ok {
		return
	}
	var patch model.StudentPatch
	if !bindJSON(c, &patch) {
		return
	}
	student, err := h.roster.UpdateStudent(c.Request.Context(), id, patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

func (h *Handlers) DeleteStudent(c *gin.Context) {
	id, ok := pathID(c, model.EntityStudent)
	if !ok {
		return
	}
	student, err := h.roster.DeleteStudent(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

func (h *Handlers) ListTeachers(c *gin.Context) {
	teachers, err := h.roster.ListTeachers(c.Request.Context(), service.TeacherFilter{
		Specialization: c.Query("specialization"),
		Query:          c.Query("q"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, teachers)
}

func (h *Handlers) GetTeacher(c *gin.Context) {
	id, ok := pathID(c, model.EntityTeacher)
	if !ok {
		return
	}
	teacher, err := h.roster.GetTeacher(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, teacher)
}

func (h *Handlers) CreateTeacher(c *gin.Context) {
	var fields model.Teacher
	if !bindJSON(c, &fields) {
		return
	}
	teacher, err := h.roster.CreateTeacher(c.Request.Context(), fields)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, teacher)
}

func (h *Handlers) UpdateTeacher(c *gin.Context) {
	id, ok := pathID(c, model.EntityTeacher)
	if !ok {
		return
	}
	var patch model.TeacherPatch
	if !bindJSON(c, &patch) {
		return
	}
	teacher, err := h.roster.UpdateTeacher(c.Request.Context(), id, patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, teacher)
}

func (h *Handlers) DeleteTeacher(c *gin.Context) {
	id, ok := pathID(c, model.EntityTeacher)
	if !ok {
		return
	}
	teacher, err := h.roster.DeleteTeacher(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, teacher)
}

func (h *Handlers) ListClasses(c *gin.Context) {
	teacherID, ok := queryInt64(c, "teacher_id")
	if !ok {
		return
	}
	classes, err := h.roster.ListClasses(c.Request.Context(), service.ClassFilter{
		TeacherID: teacherID,
		Level:     c.Query("level"),
		Query:     c.Query("q"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, classes)
}

func (h *Handlers) GetClass(c *gin.Context) {
	id, ok := pathID(c, model.EntityClass)
	if !ok {
		return
	}
	class, err := h.roster.GetClass(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, class)
}

func (h *Handlers) CreateClass(c *gin.Context) {
	var fields model.Class
	if !bindJSON(c, &fields) {
		return
	}
	class, err := h.roster.CreateClass(c.Request.Context(), fields)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, class)
}

func (h *Handlers) UpdateClass(c *gin.Context) {
	id, ok := pathID(c, model.EntityClass)
	if !ok {
		return
	}
	var patch model.ClassPatch
	if !bindJSON(c, &patch) {
		return
	}
	class, err := h.roster.UpdateClass(c.Request.Context(), id, patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, class)
}

func (h *Handlers) DeleteClass(c *gin.Context) {
	id, ok := pathID(c, model.EntityClass)
	if !ok {
		return
	}
	class, err := h.roster.DeleteClass(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, class)
}

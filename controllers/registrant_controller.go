package controllers

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mojay6111/football-signup/config"
	"github.com/mojay6111/football-signup/models"
	"github.com/mojay6111/football-signup/services"
	"github.com/mojay6111/football-signup/services/container"
)

// InterfaceRegistrantController 定义报名者控制器接口
type InterfaceRegistrantController interface {
	Signup()
	GetUsers()
	UpdateUser()
	DeleteUser()
}

// RegistrantController 报名者控制器
type RegistrantController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewRegistrantController 创建一个新的报名者控制器
func NewRegistrantController(ctx *gin.Context, container *container.ServiceContainer) *RegistrantController {
	return &RegistrantController{
		Ctx:       ctx,
		Container: container,
	}
}

// UserRequest PUT/DELETE /users 的请求体，email 定位目标记录
type UserRequest struct {
	Email    string `form:"email" json:"email"`
	FullName string `form:"fullname" json:"fullname"`
	Phone    string `form:"phone" json:"phone"`
}

// HandleRegistrantFunc 返回一个处理报名者请求的Gin处理函数
func HandleRegistrantFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewRegistrantController(ctx, container)

		switch method {
		case "signup":
			controller.Signup()
		case "getUsers":
			controller.GetUsers()
		case "updateUser":
			controller.UpdateUser()
		case "deleteUser":
			controller.DeleteUser()
		default:
			ctx.String(http.StatusBadRequest, "Invalid method")
		}
	}
}

// 1. Signup 处理报名表单提交
// 三个字段均为必填；邮箱重复返回400；成功后广播 newUser 事件并跳转到确认页
func (c *RegistrantController) Signup() {
	fullname := strings.TrimSpace(c.Ctx.PostForm("fullname"))
	email := strings.TrimSpace(c.Ctx.PostForm("email"))
	phone := strings.TrimSpace(c.Ctx.PostForm("phone"))

	if fullname == "" || email == "" || phone == "" {
		c.Ctx.String(http.StatusBadRequest, "All fields are required.")
		return
	}

	registrant := &models.Registrant{
		FullName: fullname,
		Email:    email,
		Phone:    phone,
	}

	registrantService := c.Container.GetService("registrant").(services.InterfaceRegistrantService)
	if err := registrantService.CreateRegistrant(registrant); err != nil {
		if errors.Is(err, services.ErrEmailRegistered) {
			c.Ctx.String(http.StatusBadRequest, "Email already registered")
			return
		}
		config.Error("插入报名者失败: %v", err)
		c.Ctx.String(http.StatusInternalServerError, "Error saving user")
		return
	}

	config.Info("新报名者已插入: %s", registrant.Email)

	// 广播完整记录给在线的管理端
	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	notificationService.Broadcast("newUser", registrant)

	c.Ctx.Redirect(http.StatusFound, "/invitation")
}

// 2. GetUsers 获取报名者列表
// 支持 search（姓名/邮箱/电话子串）、sort（"asc"/默认降序）、page、limit，
// 返回当前页数据和匹配总数
func (c *RegistrantController) GetUsers() {
	var query models.PaginationQuery
	if err := c.Ctx.ShouldBindQuery(&query); err != nil {
		c.Ctx.String(http.StatusBadRequest, "Invalid query parameters")
		return
	}
	query.Normalize()

	registrantService := c.Container.GetService("registrant").(services.InterfaceRegistrantService)
	registrants, total, err := registrantService.GetAllRegistrants(&query)
	if err != nil {
		config.Error("查询报名者列表失败: %v", err)
		c.Ctx.String(http.StatusInternalServerError, "Error fetching users.")
		return
	}

	if registrants == nil {
		registrants = []models.Registrant{}
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"users": registrants,
		"total": total,
	})
}

// 3. UpdateUser 按邮箱部分更新报名者
// 只改动提供的字段，邮箱本身不可修改；实际发生变更时广播 updateUser 事件，
// 负载仅携带邮箱和被改动的字段
func (c *RegistrantController) UpdateUser() {
	var req UserRequest
	if err := c.bindUserPayload(&req); err != nil {
		c.Ctx.String(http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" {
		c.Ctx.String(http.StatusBadRequest, "Email is required")
		return
	}

	updates := make(map[string]interface{})
	changed := gin.H{"email": req.Email}
	if req.FullName != "" {
		updates["full_name"] = req.FullName
		changed["fullname"] = req.FullName
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
		changed["phone"] = req.Phone
	}

	registrantService := c.Container.GetService("registrant").(services.InterfaceRegistrantService)
	updated, err := registrantService.UpdateRegistrant(req.Email, updates)
	if err != nil {
		config.Error("更新报名者失败: %v", err)
		c.Ctx.String(http.StatusInternalServerError, "Error updating user")
		return
	}

	if !updated {
		c.Ctx.String(http.StatusOK, "No user found")
		return
	}

	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	notificationService.Broadcast("updateUser", changed)

	c.Ctx.String(http.StatusOK, "User updated")
}

// 4. DeleteUser 按邮箱删除报名者
// 确实删除了记录时广播 deleteUser 事件，负载只有邮箱
func (c *RegistrantController) DeleteUser() {
	var req UserRequest
	if err := c.bindUserPayload(&req); err != nil {
		c.Ctx.String(http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Email == "" {
		c.Ctx.String(http.StatusBadRequest, "Email is required")
		return
	}

	registrantService := c.Container.GetService("registrant").(services.InterfaceRegistrantService)
	deleted, err := registrantService.DeleteRegistrant(req.Email)
	if err != nil {
		config.Error("删除报名者失败: %v", err)
		c.Ctx.String(http.StatusInternalServerError, "Error deleting user")
		return
	}

	if !deleted {
		c.Ctx.String(http.StatusOK, "No user found")
		return
	}

	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	notificationService.Broadcast("deleteUser", req.Email)

	c.Ctx.String(http.StatusOK, "User deleted")
}

// bindUserPayload 解析 PUT/DELETE /users 的请求体。
// DELETE 的表单体不会被 ParseForm 读取，所以这里手工解析，
// JSON 和 application/x-www-form-urlencoded 两种提交方式都支持。
func (c *RegistrantController) bindUserPayload(req *UserRequest) error {
	if c.Ctx.ContentType() == "application/json" {
		return c.Ctx.ShouldBindJSON(req)
	}

	body, err := io.ReadAll(c.Ctx.Request.Body)
	if err != nil {
		return err
	}

	values, err := url.ParseQuery(string(body))
	if err != nil {
		return err
	}
	if len(values) == 0 {
		values = c.Ctx.Request.URL.Query()
	}

	req.Email = strings.TrimSpace(values.Get("email"))
	req.FullName = strings.TrimSpace(values.Get("fullname"))
	req.Phone = strings.TrimSpace(values.Get("phone"))
	return nil
}

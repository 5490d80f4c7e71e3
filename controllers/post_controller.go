package controllers

import (
	"net/http"

	"blogapi/apperrors"
	"blogapi/middleware"
	"blogapi/models"
	"blogapi/permissions"
	"blogapi/serializers"
	"blogapi/services"
	"blogapi/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PostController struct {
	postService *services.PostService
	policy      permissions.Policy
	events      EventPublisher
}

func NewPostController(db *gorm.DB, events EventPublisher) *PostController {
	if events == nil {
		events = noopPublisher{}
	}
	return &PostController{
		postService: services.NewPostService(db),
		policy:      permissions.AuthorOrReadOnly{},
		events:      events,
	}
}

// GetPosts godoc
// @Summary List posts
// @Tags posts
// @Produce json
// @Success 200 {array} serializers.PostResponse
// @Router /posts [get]
func (pc *PostController) GetPosts(c *gin.Context) {
	if err := permissions.Check(pc.policy, c.Request.Method, middleware.CurrentIdentity(c)); err != nil {
		fail(c, err)
		return
	}

	posts, err := pc.postService.GetAllPosts(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, serializers.Posts(posts))
}

// GetPost godoc
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} serializers.PostResponse
// @Failure 404 {object} map[string]string
// @Router /posts/{id} [get]
func (pc *PostController) GetPost(c *gin.Context) {
	post, ok := pc.loadForObject(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, serializers.Post(post))
}

// CreatePost godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param post body models.CreatePostRequest true "Post"
// @Success 201 {object} serializers.PostResponse
// @Failure 400 {object} map[string][]string
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /posts [post]
func (pc *PostController) CreatePost(c *gin.Context) {
	if err := permissions.Check(pc.policy, c.Request.Method, middleware.CurrentIdentity(c)); err != nil {
		fail(c, err)
		return
	}

	var req models.CreatePostRequest
	verr, err := bindError(utils.BindJSON(c, &req))
	if err != nil {
		fail(c, err)
		return
	}
	if !verr.Empty() {
		// keep collecting so an unknown author shows up next to missing fields
		if _, mistyped := verr.Fields["author"]; req.Author != nil && !mistyped {
			if err := pc.postService.ValidateAuthor(c.Request.Context(), *req.Author); err != nil {
				av, ok := apperrors.AsValidation(err)
				if !ok {
					fail(c, err)
					return
				}
				verr.Merge(av)
			}
		}
		fail(c, verr)
		return
	}

	post, err := pc.postService.CreatePost(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}

	resp := serializers.Post(post)
	pc.events.Publish(models.EventPostCreated, resp)
	c.JSON(http.StatusCreated, resp)
}

// UpdatePost godoc
// @Summary Update a post (PUT replaces title and body, PATCH is partial)
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param post body models.UpdatePostRequest true "Fields to change"
// @Success 200 {object} serializers.PostResponse
// @Failure 400 {object} map[string][]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /posts/{id} [put]
// @Router /posts/{id} [patch]
func (pc *PostController) UpdatePost(c *gin.Context) {
	post, ok := pc.loadForObject(c)
	if !ok {
		return
	}

	var req models.UpdatePostRequest
	verr, err := bindError(utils.BindJSON(c, &req))
	if err != nil {
		fail(c, err)
		return
	}
	if c.Request.Method == http.MethodPut {
		requireFields(verr, map[string]bool{"title": req.Title != nil, "body": req.Body != nil})
	}
	if !verr.Empty() {
		fail(c, verr)
		return
	}

	post, err = pc.postService.UpdatePost(c.Request.Context(), post, &req)
	if err != nil {
		fail(c, err)
		return
	}

	resp := serializers.Post(post)
	pc.events.Publish(models.EventPostUpdated, resp)
	c.JSON(http.StatusOK, resp)
}

// DeletePost godoc
// @Summary Delete a post
// @Tags posts
// @Param id path int true "Post ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /posts/{id} [delete]
func (pc *PostController) DeletePost(c *gin.Context) {
	post, ok := pc.loadForObject(c)
	if !ok {
		return
	}

	if err := pc.postService.DeletePost(c.Request.Context(), post.ID); err != nil {
		fail(c, err)
		return
	}

	pc.events.Publish(models.EventPostDeleted, gin.H{"id": post.ID})
	c.Status(http.StatusNoContent)
}

// loadForObject runs the collection check, resolves :id and runs the object
// check, in that order.
func (pc *PostController) loadForObject(c *gin.Context) (*models.Post, bool) {
	identity := middleware.CurrentIdentity(c)
	if err := permissions.Check(pc.policy, c.Request.Method, identity); err != nil {
		fail(c, err)
		return nil, false
	}

	id, err := parseID(c)
	if err != nil {
		fail(c, err)
		return nil, false
	}

	post, err := pc.postService.GetPostByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return nil, false
	}

	if err := permissions.CheckObject(pc.policy, c.Request.Method, identity, post); err != nil {
		fail(c, err)
		return nil, false
	}

	return post, true
}

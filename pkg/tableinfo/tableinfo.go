package tableinfo

const (
	PostsTableName = "posts"

	PostIDColumn           = "id"
	PostUserIDColumn       = "user_id"
	PostTextColumn         = "text"
	PostAuthorNameColumn   = "author_name"
	PostAuthorAvatarColumn = "author_avatar"
	PostCreatedAtColumn    = "created_at"
)

const (
	CommentsTableName = "comments"

	CommentIDColumn           = "id"
	CommentPostIDColumn       = "post_id"
	CommentUserIDColumn       = "user_id"
	CommentTextColumn         = "text"
	CommentAuthorNameColumn   = "author_name"
	CommentAuthorAvatarColumn = "author_avatar"
	CommentCreatedAtColumn    = "created_at"
)

const (
	LikesTableName = "likes"

	LikePostIDColumn    = "post_id"
	LikeUserIDColumn    = "user_id"
	LikeCreatedAtColumn = "created_at"
)

const (
	UsersTableName = "users"

	UserIDColumn           = "id"
	UserNameColumn         = "name"
	UserEmailColumn        = "email"
	UserPasswordHashColumn = "password_hash"
	UserAvatarColumn       = "avatar"
	UserCreatedAtColumn    = "created_at"
)

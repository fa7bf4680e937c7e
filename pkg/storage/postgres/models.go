package postgres

import (
	"artisan/pkg/domain"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type PgUser struct {
	ID uuid.UUID `db:"id" goqu:"skipinsert"`

	Username    sql.NullString `db:"username"`
	Fullname    sql.NullString `db:"fullname"`
	Email       sql.NullString `db:"email"`
	PhoneNumber sql.NullString `db:"phone_number"`
	AccountType sql.NullString `db:"account_type"`

	Service           sql.NullString `db:"service"`
	Bio               sql.NullString `db:"bio"`
	Location          sql.NullString `db:"location"`
	State             sql.NullString `db:"state"`
	LGA               sql.NullString `db:"lga"`
	DOB               sql.NullString `db:"dob"`
	YearsOfExperience sql.NullString `db:"years_of_experience"`
	Rating            float64        `db:"rating"`
	Status            string         `db:"status"`
	Tier              int            `db:"tier"`
	PromoCode         sql.NullString `db:"promo_code"`
	ProfilePic        sql.NullString `db:"profile_pic"`
	AvatarURL         sql.NullString `db:"avatar_url"`

	BVNVerified   bool `db:"bvn_v_status"`
	EmailVerified bool `db:"email_v_status"`
	PhoneVerified bool `db:"phone_v_status"`

	PushNotifications  bool           `db:"push_notification"`
	EmailNotifications bool           `db:"email_notification"`
	FCMToken           sql.NullString `db:"fcm_token"`

	IsOnline   bool         `db:"is_online"`
	LastSeenAt sql.NullTime `db:"last_seen_at"`

	Password          string         `db:"password"`
	PasswordChangedAt sql.NullTime   `db:"password_changed_at"`
	OTP               sql.NullString `db:"otp"`
	OTPCreatedAt      sql.NullTime   `db:"otp_created_at"`
	DeviceID          sql.NullString `db:"device_id"`
	PIN               sql.NullString `db:"pin"`

	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt sql.NullTime `db:"updated_at" goqu:"skipinsert"`
}

func (p *PgUser) ToDomain() *domain.User {
	return &domain.User{
		ID:                 domain.UserID(p.ID),
		Username:           p.Username.String,
		Fullname:           p.Fullname.String,
		Email:              p.Email.String,
		PhoneNumber:        p.PhoneNumber.String,
		AccountType:        domain.AccountType(p.AccountType.String),
		Service:            p.Service.String,
		Bio:                p.Bio.String,
		Location:           p.Location.String,
		State:              p.State.String,
		LGA:                p.LGA.String,
		DOB:                p.DOB.String,
		YearsOfExperience:  p.YearsOfExperience.String,
		Rating:             p.Rating,
		Status:             domain.OnlineStatus(p.Status),
		Tier:               p.Tier,
		PromoCode:          p.PromoCode.String,
		ProfilePic:         p.ProfilePic.String,
		AvatarURL:          p.AvatarURL.String,
		BVNVerified:        p.BVNVerified,
		EmailVerified:      p.EmailVerified,
		PhoneVerified:      p.PhoneVerified,
		PushNotifications:  p.PushNotifications,
		EmailNotifications: p.EmailNotifications,
		FCMToken:           p.FCMToken.String,
		IsOnline:           p.IsOnline,
		LastSeenAt:         p.LastSeenAt.Time,
		PasswordHash:       p.Password,
		PasswordChangedAt:  p.PasswordChangedAt.Time,
		OTPHash:            p.OTP.String,
		OTPCreatedAt:       p.OTPCreatedAt.Time,
		DeviceID:           p.DeviceID.String,
		PINHash:            p.PIN.String,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt.Time,
	}
}

func (p *PgUser) FromDomain(u domain.User) {
	status := string(u.Status)
	if status == "" {
		status = string(domain.StatusOffline)
	}
	tier := u.Tier
	if tier == 0 {
		tier = 1
	}

	*p = PgUser{
		ID:                 uuid.UUID(u.ID),
		Username:           nullString(u.Username),
		Fullname:           nullString(u.Fullname),
		Email:              nullString(u.Email),
		PhoneNumber:        nullString(u.PhoneNumber),
		AccountType:        nullString(string(u.AccountType)),
		Service:            nullString(u.Service),
		Bio:                nullString(u.Bio),
		Location:           nullString(u.Location),
		State:              nullString(u.State),
		LGA:                nullString(u.LGA),
		DOB:                nullString(u.DOB),
		YearsOfExperience:  nullString(u.YearsOfExperience),
		Rating:             u.Rating,
		Status:             status,
		Tier:               tier,
		PromoCode:          nullString(u.PromoCode),
		ProfilePic:         nullString(u.ProfilePic),
		AvatarURL:          nullString(u.AvatarURL),
		BVNVerified:        u.BVNVerified,
		EmailVerified:      u.EmailVerified,
		PhoneVerified:      u.PhoneVerified,
		PushNotifications:  u.PushNotifications,
		EmailNotifications: u.EmailNotifications,
		FCMToken:           nullString(u.FCMToken),
		IsOnline:           u.IsOnline,
		LastSeenAt:         nullTime(u.LastSeenAt),
		Password:           u.PasswordHash,
		PasswordChangedAt:  nullTime(u.PasswordChangedAt),
		OTP:                nullString(u.OTPHash),
		OTPCreatedAt:       nullTime(u.OTPCreatedAt),
		DeviceID:           nullString(u.DeviceID),
		PIN:                nullString(u.PINHash),
	}
}

type PgPortfolio struct {
	ID          uuid.UUID      `db:"id"           goqu:"skipinsert"`
	Code        string         `db:"portfolio_id"`
	UserID      uuid.UUID      `db:"user_id"`
	Title       string         `db:"title"`
	Role        string         `db:"role"`
	Description string         `db:"description"`
	Background  string         `db:"portfolio_bg"`
	Images      pq.StringArray `db:"images"`
	CreatedAt   time.Time      `db:"created_at"   goqu:"skipinsert"`
	UpdatedAt   sql.NullTime   `db:"updated_at"   goqu:"skipinsert"`
}

func (p *PgPortfolio) ToDomain() *domain.Portfolio {
	images := make([]string, len(p.Images))
	copy(images, p.Images)

	return &domain.Portfolio{
		ID:          domain.PortfolioID(p.ID),
		Code:        p.Code,
		UserID:      domain.UserID(p.UserID),
		Title:       p.Title,
		Role:        p.Role,
		Description: p.Description,
		Background:  p.Background,
		Images:      images,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt.Time,
	}
}

func (p *PgPortfolio) FromDomain(d domain.Portfolio) {
	images := d.Images
	if images == nil {
		images = []string{}
	}

	*p = PgPortfolio{
		ID:          uuid.UUID(d.ID),
		Code:        d.Code,
		UserID:      uuid.UUID(d.UserID),
		Title:       d.Title,
		Role:        d.Role,
		Description: d.Description,
		Background:  d.Background,
		Images:      pq.StringArray(images),
	}
}

type PgNotification struct {
	ID        uuid.UUID      `db:"id"         goqu:"skipinsert"`
	UserID    uuid.UUID      `db:"user_id"`
	Type      string         `db:"type"`
	Title     string         `db:"title"`
	Message   string         `db:"message"`
	Status    string         `db:"status"`
	Link      sql.NullString `db:"link"`
	Img       sql.NullString `db:"img"`
	Ref       string         `db:"ref"`
	CreatedAt time.Time      `db:"created_at" goqu:"skipinsert"`
	UpdatedAt sql.NullTime   `db:"updated_at" goqu:"skipinsert"`
}

func (p *PgNotification) ToDomain() *domain.Notification {
	return &domain.Notification{
		ID:        domain.NotificationID(p.ID),
		UserID:    domain.UserID(p.UserID),
		Type:      p.Type,
		Title:     p.Title,
		Body:      p.Message,
		Status:    domain.NotificationStatus(p.Status),
		Link:      p.Link.String,
		Img:       p.Img.String,
		Ref:       p.Ref,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt.Time,
	}
}

func (p *PgNotification) FromDomain(n domain.Notification) {
	status := n.Status
	if status == "" {
		status = domain.NotificationUnread
	}

	*p = PgNotification{
		ID:      uuid.UUID(n.ID),
		UserID:  uuid.UUID(n.UserID),
		Type:    n.Type,
		Title:   n.Title,
		Message: n.Body,
		Status:  string(status),
		Link:    nullString(n.Link),
		Img:     nullString(n.Img),
		Ref:     n.Ref,
	}
}

type PgChat struct {
	ID            uuid.UUID     `db:"id"              goqu:"skipinsert"`
	User1         uuid.UUID     `db:"user1_id"`
	User2         uuid.UUID     `db:"user2_id"`
	LastMessageID uuid.NullUUID `db:"last_message_id" goqu:"skipinsert"`
	CreatedAt     time.Time     `db:"created_at"      goqu:"skipinsert"`
	UpdatedAt     sql.NullTime  `db:"updated_at"      goqu:"skipinsert"`
}

func (p *PgChat) ToDomain() *domain.Chat {
	c := &domain.Chat{
		ID:        domain.ChatID(p.ID),
		User1:     domain.UserID(p.User1),
		User2:     domain.UserID(p.User2),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt.Time,
	}
	if p.LastMessageID.Valid {
		id := domain.MessageID(p.LastMessageID.UUID)
		c.LastMessageID = &id
	}

	return c
}

type PgMessage struct {
	ID        uuid.UUID `db:"id"           goqu:"skipinsert"`
	ChatID    uuid.UUID `db:"chat_id"`
	SenderID  uuid.UUID `db:"sender_id"`
	Content   string    `db:"content"`
	IsRead    bool      `db:"is_read"`
	Type      string    `db:"message_type"`
	CreatedAt time.Time `db:"created_at"   goqu:"skipinsert"`
}

func (p *PgMessage) ToDomain() *domain.Message {
	return &domain.Message{
		ID:        domain.MessageID(p.ID),
		ChatID:    domain.ChatID(p.ChatID),
		SenderID:  domain.UserID(p.SenderID),
		Content:   p.Content,
		IsRead:    p.IsRead,
		Type:      domain.MessageType(p.Type),
		CreatedAt: p.CreatedAt,
	}
}

func (p *PgMessage) FromDomain(m domain.Message) {
	typ := m.Type
	if typ == "" {
		typ = domain.MessageTypeText
	}

	*p = PgMessage{
		ID:       uuid.UUID(m.ID),
		ChatID:   uuid.UUID(m.ChatID),
		SenderID: uuid.UUID(m.SenderID),
		Content:  m.Content,
		IsRead:   m.IsRead,
		Type:     string(typ),
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

func uuids[T ~[16]byte](ids []T) []interface{} {
	out := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		out = append(out, uuid.UUID(id))
	}

	return out
}

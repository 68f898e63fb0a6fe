package models

import "time"

type SiteSettings struct {
	ID            string    `db:"id" json:"id,omitempty"`
	Phone         string    `db:"phone" json:"phone"`
	Email         string    `db:"email" json:"email"`
	Address       string    `db:"address" json:"address"`
	WorkSchedule  string    `db:"work_schedule" json:"work_schedule"`
	VKLink        string    `db:"vk_link" json:"vk_link"`
	PrivacyPolicy string    `db:"privacy_policy" json:"privacy_policy"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// SiteSettingsPatch holds only the fields present in an update request.
type SiteSettingsPatch struct {
	Phone         *string
	Email         *string
	Address       *string
	WorkSchedule  *string
	VKLink        *string
	PrivacyPolicy *string
}

func (p SiteSettingsPatch) Empty() bool {
	return p.Phone == nil && p.Email == nil && p.Address == nil &&
		p.WorkSchedule == nil && p.VKLink == nil && p.PrivacyPolicy == nil
}

// DefaultSiteSettings is served until an administrator saves settings.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		Phone:        "+7 (903) 850-90-90",
		Email:        "info@psycenter-vrn.ru",
		Address:      "г. Воронеж",
		WorkSchedule: "Пн-Пт: 9:00-20:00, Сб: 10:00-16:00",
		VKLink:       "https://vk.com/psychocenter",
		PrivacyPolicy: "Мы обрабатываем персональные данные, переданные через формы сайта, " +
			"исключительно для связи с вами и записи на консультации.",
	}
}

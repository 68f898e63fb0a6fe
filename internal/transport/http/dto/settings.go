package dto

import "psycenter/internal/domain/models"

// UpdateSettingsRequest carries only the fields to change; absent fields keep
// their stored value.
type UpdateSettingsRequest struct {
	Phone         *string `json:"phone,omitempty" validate:"omitempty,max=64"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	Address       *string `json:"address,omitempty"`
	WorkSchedule  *string `json:"work_schedule,omitempty"`
	VKLink        *string `json:"vk_link,omitempty" validate:"omitempty,url"`
	PrivacyPolicy *string `json:"privacy_policy,omitempty"`
}

func (r UpdateSettingsRequest) Patch() models.SiteSettingsPatch {
	return models.SiteSettingsPatch{
		Phone:         r.Phone,
		Email:         r.Email,
		Address:       r.Address,
		WorkSchedule:  r.WorkSchedule,
		VKLink:        r.VKLink,
		PrivacyPolicy: r.PrivacyPolicy,
	}
}

package service

import (
	"github.com/jinzhu/copier"
	"github.com/lshigami/surveyhub/internal/dto"
	"github.com/lshigami/surveyhub/internal/model"
)

func toChoiceDTO(choice model.Choice) dto.ChoiceDTO {
	var resp dto.ChoiceDTO
	copier.Copy(&resp, &choice)
	return resp
}

func toQuestionDTO(question model.Question) dto.QuestionDTO {
	resp := dto.QuestionDTO{
		ID:           question.ID,
		Text:         question.Text,
		QuestionType: string(question.QuestionType),
		IsRequired:   question.IsRequired,
		Order:        question.Order,
		Choices:      make([]dto.ChoiceDTO, 0, len(question.Choices)),
	}
	for _, choice := range question.Choices {
		resp.Choices = append(resp.Choices, toChoiceDTO(choice))
	}
	return resp
}

func toSurveyDTO(survey model.Survey) dto.SurveyDTO {
	resp := dto.SurveyDTO{
		ID:          survey.ID,
		Title:       survey.Title,
		Description: survey.Description,
		CreatedBy:   survey.CreatedBy.Username,
		CreatedAt:   survey.CreatedAt,
		UpdatedAt:   survey.UpdatedAt,
		IsActive:    survey.IsActive,
		Questions:   make([]dto.QuestionDTO, 0, len(survey.Questions)),
	}
	for _, question := range survey.Questions {
		resp.Questions = append(resp.Questions, toQuestionDTO(question))
	}
	return resp
}

func toAnswerDTO(answer model.Answer) dto.AnswerDTO {
	resp := dto.AnswerDTO{
		ID:           answer.ID,
		Response:     answer.ResponseID,
		Question:     answer.QuestionID,
		TextAnswer:   answer.TextAnswer,
		ChoiceAnswer: make([]uint, 0, len(answer.Choices)),
	}
	for _, choice := range answer.Choices {
		resp.ChoiceAnswer = append(resp.ChoiceAnswer, choice.ID)
	}
	return resp
}

func toResponseDTO(response model.Response) dto.ResponseDTO {
	resp := dto.ResponseDTO{
		ID:         response.ID,
		Survey:     response.SurveyID,
		Respondent: response.RespondentID,
		CreatedAt:  response.CreatedAt,
		Answers:    make([]dto.AnswerDTO, 0, len(response.Answers)),
	}
	for _, answer := range response.Answers {
		resp.Answers = append(resp.Answers, toAnswerDTO(answer))
	}
	return resp
}

func toUserDTO(user model.User) dto.UserDTO {
	var resp dto.UserDTO
	copier.Copy(&resp, &user)
	return resp
}
